package webtoons

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	f := newFakeFetcher().page("https://m.webtoons.com/id/search?keyword=action", searchHTML)
	c := newTestClient(f)

	r, err := c.Search(context.Background(), "action")
	require.NoError(t, err)

	require.Len(t, r.Original, 2)
	assert.Equal(t, SearchEntry{
		Title:     "First Action",
		Author:    "Writer One",
		ViewCount: "1,2 JT",
		Link:      "/id/action/first/list?title_no=1",
		Image:     "https://thumb/1.jpg",
		IsNew:     true,
	}, r.Original[0])
	assert.Equal(t, "Second Action", r.Original[1].Title)
	assert.False(t, r.Original[1].IsNew)

	require.Len(t, r.Canvas, 1)
	assert.Equal(t, "Canvas Action", r.Canvas[0].Title)
	assert.Equal(t, "12 RB", r.Canvas[0].ViewCount)
	assert.False(t, r.Canvas[0].IsNew)
}

func TestSearchEncodesQuery(t *testing.T) {
	f := newFakeFetcher()
	c := newTestClient(f)

	_, err := c.Search(context.Background(), "solo leveling?")
	require.Error(t, err)

	require.Len(t, f.calls, 1)
	assert.Equal(t, "https://m.webtoons.com/id/search?keyword=solo+leveling%3F", f.calls[0].URL)
}

func TestSearchWithoutContainers(t *testing.T) {
	r := parseSearch(mustParse(t, "<html><body><p>Tidak ada hasil</p></body></html>"))

	assert.NotNil(t, r.Original)
	assert.NotNil(t, r.Canvas)
	assert.Empty(t, r.Original)
	assert.Empty(t, r.Canvas)
}

func TestSearchCanvasOnlyPage(t *testing.T) {
	doc := mustParse(t, `<div class="webtoon_list_wrap">
		<ul class="webtoon_list type_small">
			<li><a class="link" href="/c"><div class="info_text"><p class="title">Canvas Only</p></div></a></li>
		</ul>
	</div>`)

	r := parseSearch(doc)

	assert.Empty(t, r.Original)
	require.Len(t, r.Canvas, 1)
	assert.Equal(t, "Canvas Only", r.Canvas[0].Title)
	assert.Equal(t, "/c", r.Canvas[0].Link)
}
