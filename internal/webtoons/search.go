package webtoons

import (
	"context"

	"github.com/brogergvhs/toond/internal/markup"
)

const (
	selSearchWrap   = ".webtoon_list_wrap"
	// canvas lists carry the type_small variant. A canvas-only page has a
	// single wrap, so originals must exclude it to keep the buckets disjoint.
	selOriginalItem = ".webtoon_list:not(.type_small) li"
	selCanvasItem   = ".webtoon_list.type_small li"
	selNewBadge   = ".badge_new2"
)

// Search runs a keyword search on the mobile site.
func (c *Client) Search(ctx context.Context, query string) (*SearchResults, error) {
	target := c.SearchURL(query)

	doc, err := c.document(ctx, target)
	if err != nil {
		return nil, wrap("search", target, err)
	}

	r := parseSearch(doc)
	c.log.Debugf("search %q: %d original, %d canvas\n", query, len(r.Original), len(r.Canvas))

	return r, nil
}

func parseSearch(doc markup.Node) *SearchResults {
	wraps := doc.Select(selSearchWrap)

	r := &SearchResults{
		Original: []SearchEntry{},
		Canvas:   []SearchEntry{},
	}

	for _, li := range markup.Find(markup.First(wraps), selOriginalItem) {
		e := searchEntry(li)
		e.IsNew = len(li.Select(selNewBadge)) > 0
		r.Original = append(r.Original, e)
	}

	// canvas listings never show a "new" badge
	for _, li := range markup.Find(markup.Last(wraps), selCanvasItem) {
		r.Canvas = append(r.Canvas, searchEntry(li))
	}

	return r
}

func searchEntry(li markup.Node) SearchEntry {
	return SearchEntry{
		Title:     markup.Text(li, ".info_text .title"),
		Author:    markup.Text(li, ".info_text .author"),
		ViewCount: markup.Text(li, ".info_text .view_count"),
		Link:      markup.AttrOr(li, "a.link", "href", ""),
		Image:     markup.AttrOr(li, ".image_wrap img", "src", ""),
	}
}
