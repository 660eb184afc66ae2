package cmd

import (
	"fmt"

	"github.com/brogergvhs/toond/internal/episodes"

	"github.com/manifoldco/promptui"
)

// pickEpisodes lets the user choose episodes interactively. Choosing "done"
// (or an item twice) ends the selection.
func pickEpisodes(all []episodes.Episode, multi bool) ([]episodes.Episode, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("no episodes found")
	}

	items := make([]string, 0, len(all)+1)
	for _, e := range all {
		items = append(items, fmt.Sprintf("%s  %s  (%s)", e.Label(), e.Title, e.Date))
	}
	if multi {
		items = append(items, "done")
	}

	var picked []episodes.Episode
	seen := map[int]bool{}

	for {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Select episode (%d picked)", len(picked)),
			Items: items,
			Size:  15,
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("selection cancelled")
		}

		if idx == len(all) || seen[idx] {
			break
		}

		seen[idx] = true
		picked = append(picked, all[idx])

		if !multi {
			break
		}
	}

	return picked, nil
}
