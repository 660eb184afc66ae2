package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	return filepath.Join(dir, appName)
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{Locale: "en", MaxRedirects: 3})
	require.NoError(t, err)

	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 3, cfg.MaxRedirects)
	assert.Equal(t, 30, cfg.Timeout)
	assert.True(t, cfg.CloudflareBypass)
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	isolate(t)
	_, err := InitDefaultConfig()
	require.NoError(t, err)

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, Debug: true})
	require.NoError(t, err)

	assert.Equal(t, "(ignored config)", used)
	assert.True(t, cfg.Debug)
}

func TestLoadMergedPartialProfile(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("locale: en\nmax_redirects: 0\nlisten: ':8080'\n"), 0644))

	cfg, used, err := LoadMerged(Options{Listen: ":9090"})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 5, cfg.MaxRedirects)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "https://m.webtoons.com", cfg.MobileBase)

	wc := cfg.Client()
	assert.Equal(t, "en", wc.Locale)
	assert.Equal(t, 5, wc.MaxRedirects)
}

func TestProfiles(t *testing.T) {
	root := isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "Default.yaml"), path)

	_, err = InitDefaultConfig()
	assert.True(t, errors.Is(err, os.ErrExist))

	other, err := ConfigPathByLabel("english")
	require.NoError(t, err)
	require.NoError(t, SaveYAML(DefaultConfig(), other))

	require.NoError(t, SwitchConfig("english"))
	active, err := ActiveConfigPath()
	require.NoError(t, err)
	assert.Equal(t, other, active)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.True(t, list[1].Active)

	require.NoError(t, RemoveConfig("english"))
	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, DefaultLabel, label)

	assert.Error(t, RemoveConfig(DefaultLabel))
	assert.Error(t, SwitchConfig("missing"))
	_, err = ConfigPathByLabel("../escape")
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	DefaultConfig().Print(&buf)

	assert.Contains(t, buf.String(), " -locale: id\n")
	assert.Contains(t, buf.String(), " -max_redirects: 5\n")
}

func TestRenameConfigKeepsActive(t *testing.T) {
	isolate(t)
	_, err := InitDefaultConfig()
	require.NoError(t, err)

	path, err := ConfigPathByLabel("old")
	require.NoError(t, err)
	require.NoError(t, SaveYAML(DefaultConfig(), path))
	require.NoError(t, SwitchConfig("old"))

	require.NoError(t, RenameConfig("old", "new"))

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "new", label)
	assert.NoFileExists(t, path)

	assert.Error(t, RenameConfig(DefaultLabel, "x"))
	assert.Error(t, RenameConfig("new", DefaultLabel))
}

func TestLoadProfileSummary(t *testing.T) {
	isolate(t)

	path, err := ConfigPathByLabel("english")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("locale: en\nmax_redirects: -1\n"), 0644))

	cfg, err := LoadProfile("english")
	require.NoError(t, err)
	assert.Equal(t, "locale=en mobile=https://m.webtoons.com max_redirects=5", cfg.Summary())

	_, err = LoadProfile("missing")
	assert.Error(t, err)
}
