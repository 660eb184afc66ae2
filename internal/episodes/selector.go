package episodes

import (
	"strconv"
	"strings"
)

// Filter applies the first non-empty selector: an episode label (or 1-based
// index), an index range "a-b", or an index list "1,3,5". With none set it
// returns everything.
func Filter(all []Episode, episode, rng, list string) []Episode {
	if episode != "" {
		if byLabel := FilterByLabel(all, episode); len(byLabel) > 0 {
			return byLabel
		}
		if idx, err := atoi(episode); err == nil && idx > 0 && idx <= len(all) {
			return []Episode{all[idx-1]}
		}

		return nil
	}
	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all
}

func FilterByLabel(all []Episode, label string) []Episode {
	label = strings.TrimPrefix(strings.TrimSpace(label), "#")

	var out []Episode
	for _, e := range all {
		if e.Label() == label {
			out = append(out, e)
		}
	}

	return out
}

func FilterRange(all []Episode, rng string) []Episode {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	if start <= 0 || end <= 0 || start > end || end > len(all) {
		return nil
	}

	return all[start-1 : end]
}

func FilterList(all []Episode, list string) []Episode {
	var out []Episode
	for _, p := range strings.Split(list, ",") {
		idx, err := atoi(p)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}

		out = append(out, all[idx-1])
	}

	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
