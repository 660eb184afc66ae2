// Package episodes orders a title's episodes for download and picks the ones
// the user asked for.
package episodes

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/brogergvhs/toond/internal/markup"
	"github.com/brogergvhs/toond/internal/util"
	"github.com/brogergvhs/toond/internal/webtoons"
)

var reUnderscore = regexp.MustCompile(`_+`)

type Episode struct {
	webtoons.Episode
	Series string
	// Number is the numeric episode id, 0 when the page had none.
	Number int
}

// FromDetail wraps the detail page episodes and orders them oldest first.
// The list page itself is usually newest first.
func FromDetail(d *webtoons.TitleDetail) []Episode {
	out := make([]Episode, 0, len(d.Episodes))
	for _, e := range d.Episodes {
		n, _ := markup.ParseInt(e.EpisodeID)
		out = append(out, Episode{Episode: e, Series: d.Title, Number: n})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Number, out[j].Number
		if a == 0 || b == 0 {
			return a != 0 && b == 0
		}
		return a < b
	})

	return out
}

// Label is how the user refers to an episode: the displayed number without
// its "#", falling back to the id.
func (e Episode) Label() string {
	if l := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(e.DisplayNumber), "#")); l != "" {
		return l
	}
	if e.EpisodeID != "" {
		return e.EpisodeID
	}

	return strconv.Itoa(e.Number)
}

func sanitize(s string) string {
	s = strings.ToLower(s)

	s = strings.NewReplacer(
		"•", "_", "-", "_", "—", "_", "–", "_",
		"/", "_", "\\", "_", ".", "_", " ", "_",
		"#", "", "(", "", ")", "",
	).Replace(s)

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}

	return strings.Trim(reUnderscore.ReplaceAllString(string(clean), "_"), "_")
}

func (e Episode) baseName() string {
	parts := []string{}
	for _, p := range []string{sanitize(e.Series), "ep" + sanitize(e.Label()), sanitize(e.Title)} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, "_")
}

func (e Episode) FolderName() string {
	return e.baseName() + util.TempSuffix
}

func (e Episode) OutputCBZ() string {
	return e.baseName() + ".cbz"
}

func (e Episode) OutputCBZPath(out string) string {
	return filepath.Join(out, e.OutputCBZ())
}
