package webtoons

import (
	"context"
	"sort"

	"github.com/brogergvhs/toond/internal/markup"
)

const (
	selTrending = "._trending_title_a"
	selPopular  = "._popular_title_a"
)

// Listing fetches the landing page and returns its trending and popular
// rankings.
func (c *Client) Listing(ctx context.Context) (*Listing, error) {
	target := c.HomeURL()

	doc, err := c.document(ctx, target)
	if err != nil {
		return nil, wrap("listing", target, err)
	}

	l := parseListing(doc)
	c.log.Debugf("listing: %d trending, %d popular\n", len(l.Trending), len(l.Popular))

	return l, nil
}

func parseListing(doc markup.Node) *Listing {
	return &Listing{
		Trending: parseRanked(doc.Select(selTrending)),
		Popular:  parseRanked(doc.Select(selPopular)),
	}
}

// parseRanked drops anchors without a positive rank or a title and keeps the
// first anchor seen for a repeated rank.
func parseRanked(anchors []markup.Node) []RankedEntry {
	out := make([]RankedEntry, 0, len(anchors))
	seen := map[int]bool{}

	for _, a := range anchors {
		rank, ok := markup.ParseInt(markup.AttrOr(a, "", "data-rank", ""))
		title := markup.Text(a, ".title")
		if !ok || rank < 1 || title == "" || seen[rank] {
			continue
		}
		seen[rank] = true

		titleID, _ := markup.ParseInt(markup.AttrOr(a, "", "data-title-no", ""))

		out = append(out, RankedEntry{
			Rank:      rank,
			Title:     title,
			TitleID:   titleID,
			Genre:     markup.Text(a, ".genre"),
			URL:       markup.AttrOr(a, "", "href", ""),
			Thumbnail: markup.AttrOr(a, "img", "src", ""),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	return out
}
