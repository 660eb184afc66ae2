package webtoons

import (
	"context"
	"fmt"

	"github.com/brogergvhs/toond/internal/fetch"
	"github.com/brogergvhs/toond/internal/markup"
)

// Reader fetches an episode's viewer page and returns its panels.
//
// The canonical viewer URL answers with a redirect to a session specific
// URL, often relative to the mobile origin. Redirects are therefore followed
// here rather than by the transport, at most MaxRedirects times. The request
// headers are identical on every hop.
func (c *Client) Reader(ctx context.Context, viewerURL string) (*ReaderResult, error) {
	target := viewerURL

	for hops := 0; ; hops++ {
		res, err := c.fetcher.Fetch(ctx, target, fetch.Options{Headers: c.headers})
		if err != nil {
			return nil, wrap("viewer", viewerURL, err)
		}

		if !res.IsRedirect() {
			doc, err := markup.Parse(res.Body)
			if err != nil {
				return nil, wrap("viewer", viewerURL, err)
			}

			r := parseReader(doc)
			c.log.Debugf("viewer %s: %d images after %d redirects\n", target, r.ImageCount, hops)

			return r, nil
		}

		loc := res.Location()
		if loc == "" {
			return nil, wrap("viewer", viewerURL, fmt.Errorf("%w (HTTP %d at %s)", ErrRedirectNoLocation, res.Status, target))
		}
		if hops >= c.cfg.MaxRedirects {
			return nil, wrap("viewer", viewerURL, fmt.Errorf("%w: more than %d", ErrTooManyRedirects, c.cfg.MaxRedirects))
		}

		next := c.resolveMobile(loc)
		c.log.Debugf("viewer redirect %d: %s -> %s\n", hops+1, target, next)
		target = next
	}
}

func parseReader(doc markup.Node) *ReaderResult {
	images := []string{}

	// data-url holds the real panel; src may be a lazy-load placeholder
	for _, panel := range doc.Select("#_viewer_area .viewer_img") {
		src, ok := markup.FirstAttr(panel, "img", "data-url", "src")
		if !ok {
			// some viewers put the class on the <img> itself
			src, ok = markup.FirstAttr(panel, "", "data-url", "src")
		}
		if ok {
			images = append(images, src)
		}
	}

	return &ReaderResult{
		Title:        markup.Text(doc, ".viewer_header .subj"),
		EpisodeTitle: markup.Text(doc, ".viewer_header .title"),
		Images:       images,
		ImageCount:   len(images),
	}
}
