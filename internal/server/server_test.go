package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/brogergvhs/toond/internal/webtoons"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

type fakeSource struct {
	listing *webtoons.Listing
	search  *webtoons.SearchResults
	detail  *webtoons.TitleDetail
	reader  *webtoons.ReaderResult
	err     error

	lastQuery  string
	lastTarget string
}

func (f *fakeSource) Listing(context.Context) (*webtoons.Listing, error) {
	return f.listing, f.err
}

func (f *fakeSource) Search(_ context.Context, q string) (*webtoons.SearchResults, error) {
	f.lastQuery = q
	return f.search, f.err
}

func (f *fakeSource) Detail(_ context.Context, u string) (*webtoons.TitleDetail, error) {
	f.lastTarget = u
	return f.detail, f.err
}

func (f *fakeSource) Reader(_ context.Context, u string) (*webtoons.ReaderResult, error) {
	f.lastTarget = u
	return f.reader, f.err
}

func (f *fakeSource) ListURL(titleNo int) string {
	return "https://m.webtoons.com/id/action/title/list?title_no=" + strconv.Itoa(titleNo)
}

func get(t *testing.T, src Source, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	NewRouter(src, nil).ServeHTTP(w, req)

	return w
}

func rankedN(n int) []webtoons.RankedEntry {
	out := make([]webtoons.RankedEntry, n)
	for i := range out {
		out[i] = webtoons.RankedEntry{Rank: i + 1, Title: "T" + strconv.Itoa(i+1)}
	}
	return out
}

func TestTrendingLimits(t *testing.T) {
	src := &fakeSource{listing: &webtoons.Listing{Trending: rankedN(12), Popular: rankedN(3)}}

	for target, want := range map[string]int{
		"/":                     10,
		"/?limit=4":             10,
		"/api/trending":         10,
		"/api/trending?limit=4": 4,
		"/api/trending?limit=0": 12,
		"/api/popular":          3,
	} {
		w := get(t, src, target)
		require.Equal(t, http.StatusOK, w.Code, target)

		var got []webtoons.RankedEntry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, want, target)
		assert.Equal(t, 1, got[0].Rank, target)
	}

	assert.Equal(t, http.StatusBadRequest, get(t, src, "/api/trending?limit=x").Code)
}

func TestTrendingUpstreamFailure(t *testing.T) {
	w := get(t, &fakeSource{err: errUpstream}, "/api/trending")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "upstream down")
}

func TestHomeRendersEmptyOnUpstreamFailure(t *testing.T) {
	w := get(t, &fakeSource{err: errUpstream}, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearch(t *testing.T) {
	src := &fakeSource{search: &webtoons.SearchResults{
		Original: []webtoons.SearchEntry{{Title: "Tower"}},
		Canvas:   []webtoons.SearchEntry{},
	}}

	w := get(t, src, "/api/search?q=tower+of+god")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tower of god", src.lastQuery)
	assert.JSONEq(t, `{"original":[{"title":"Tower","author":"","viewCount":"","link":"","image":"","isNew":false}],"canvas":[]}`,
		w.Body.String())

	assert.Equal(t, http.StatusBadRequest, get(t, src, "/api/search?q=%20").Code)
	assert.Equal(t, http.StatusBadGateway, get(t, &fakeSource{err: errUpstream}, "/api/search?q=a").Code)
}

func TestDetail(t *testing.T) {
	src := &fakeSource{detail: &webtoons.TitleDetail{Title: "Spirit Fingers"}}

	w := get(t, src, "/detail/1577")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://m.webtoons.com/id/action/title/list?title_no=1577", src.lastTarget)
	assert.Contains(t, w.Body.String(), `"backgroundImage":null`)

	assert.Equal(t, http.StatusBadRequest, get(t, src, "/detail/abc").Code)
	assert.Equal(t, http.StatusNotFound, get(t, &fakeSource{err: errUpstream}, "/detail/1").Code)
}

func TestViewer(t *testing.T) {
	link := "https://m.webtoons.com/id/x/viewer?title_no=1&episode_no=2"
	src := &fakeSource{reader: &webtoons.ReaderResult{
		Title: "T", Images: []string{"a.jpg", "b.jpg"}, ImageCount: 2,
	}}

	w := get(t, src, "/viewer/1/2?link="+
		"https%3A%2F%2Fm.webtoons.com%2Fid%2Fx%2Fviewer%3Ftitle_no%3D1%26episode_no%3D2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, link, src.lastTarget)
	assert.Contains(t, w.Body.String(), `"imageCount":2`)

	assert.Equal(t, http.StatusBadRequest, get(t, src, "/viewer/1/2").Code)
	assert.Equal(t, http.StatusNotFound, get(t, &fakeSource{err: webtoons.ErrTooManyRedirects}, "/viewer/1/2?link=x").Code)

	empty := &fakeSource{reader: &webtoons.ReaderResult{Images: []string{}}}
	w = get(t, empty, "/viewer/1/2?link=x")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), webtoons.ErrNoImages.Error())
}

func TestHealthz(t *testing.T) {
	w := get(t, &fakeSource{}, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
