package util

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuman(t *testing.T) {
	assert.Equal(t, "512 B", Human(512))
	assert.Equal(t, "1.50 KB", Human(1536))
	assert.Equal(t, "2.00 MB", Human(2<<20))
	assert.Equal(t, "1.00 GB", Human(1<<30))
}

func TestCreateCBZSortsEntries(t *testing.T) {
	dir := t.TempDir()

	var files []string
	for _, name := range []string{"panel_003.jpg", "panel_001.jpg", "panel_002.jpg"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0644))
		files = append(files, p)
	}

	out := filepath.Join(dir, "episode.cbz")
	require.NoError(t, CreateCBZ(files, out))

	_, err := os.Stat(out + ".part")
	assert.True(t, os.IsNotExist(err))

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"panel_001.jpg", "panel_002.jpg", "panel_003.jpg"}, names)
	assert.Equal(t, []string{"panel_003.jpg", "panel_001.jpg", "panel_002.jpg"}, []string{
		filepath.Base(files[0]), filepath.Base(files[1]), filepath.Base(files[2]),
	})
}

func TestCreateCBZMissingFileLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "broken.cbz")

	err := CreateCBZ([]string{filepath.Join(dir, "nope.jpg")}, out)
	require.Error(t, err)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(out + ".part")
	assert.True(t, os.IsNotExist(err))
}

func TestCleanupUnfinishedTempFolders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ep_1"+TempSuffix), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ep_2.cbz"), nil, 0644))

	CleanupUnfinishedTempFolders(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ep_2.cbz", entries[0].Name())
}
