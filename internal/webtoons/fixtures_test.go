package webtoons

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/brogergvhs/toond/internal/fetch"
	"github.com/brogergvhs/toond/internal/markup"
	"github.com/stretchr/testify/require"
)

const landingHTML = `<html><body>
<ul class="trending">
  <li><a class="_trending_title_a" data-rank="2" data-title-no="200" href="https://www.webtoons.com/id/romance/b/list?title_no=200">
    <img src="https://thumb/b.jpg"><p class="genre">Romance</p><p class="title">Beta</p></a></li>
  <li><a class="_trending_title_a" data-rank="1" data-title-no="100" href="https://www.webtoons.com/id/action/a/list?title_no=100">
    <img src="https://thumb/a.jpg"><p class="genre">Action</p><p class="title"> Alpha </p></a></li>
  <li><a class="_trending_title_a" data-rank="3" href="/no-title"><p class="genre">Drama</p></a></li>
  <li><a class="_trending_title_a" data-title-no="300"><p class="title">No Rank</p></a></li>
  <li><a class="_trending_title_a" data-rank="0"><p class="title">Zero</p></a></li>
  <li><a class="_trending_title_a" data-rank="1" data-title-no="999"><p class="title">Duplicate</p></a></li>
</ul>
<ul class="popular">
  <li><a class="_popular_title_a" data-rank="10" data-title-no="10"><p class="title">Ten</p></a></li>
  <li><a class="_popular_title_a" data-rank="4" data-title-no="4"><p class="title">Four</p></a></li>
  <li><a class="_popular_title_a" data-rank="7" data-title-no="7"><p class="title">Seven</p></a></li>
</ul>
</body></html>`

const searchHTML = `<html><body>
<div class="webtoon_list_wrap">
  <ul class="webtoon_list">
    <li><a class="link" href="/id/action/first/list?title_no=1">
      <div class="image_wrap"><img src="https://thumb/1.jpg"></div>
      <div class="info_text"><p class="title">First Action</p><p class="author">Writer One</p><p class="view_count">1,2 JT</p></div>
      <span class="badge_new2">NEW</span></a></li>
    <li><a class="link" href="/id/action/second/list?title_no=2">
      <div class="image_wrap"><img src="https://thumb/2.jpg"></div>
      <div class="info_text"><p class="title">Second Action</p><p class="author">Writer Two</p><p class="view_count">980 RB</p></div></a></li>
  </ul>
</div>
<div class="webtoon_list_wrap">
  <ul class="webtoon_list">
    <li><div class="info_text"><p class="title">Unrelated</p></div></li>
  </ul>
  <ul class="webtoon_list type_small">
    <li><a class="link" href="/id/canvas/third/list?title_no=3">
      <div class="image_wrap"><img src="https://thumb/3.jpg"></div>
      <div class="info_text"><p class="title">Canvas Action</p><p class="author">Indie</p><p class="view_count">12 RB</p></div>
      <span class="badge_new2">NEW</span></a></li>
  </ul>
</div>
</body></html>`

const detailHTML = `<html><body>
<div class="detail_bg" style="background:url('https://bg/spirit.jpg') no-repeat 100% 0"></div>
<div class="detail_header">
  <span class="thmb"><img src="https://thumb/spirit.jpg"></span>
  <p class="genre">Action</p>
  <h1 class="subj">Spirit Fingers</h1>
</div>
<p class="summary">  A girl joins a drawing club.  </p>
<ul class="grade_area">
  <li><span class="ico_view"></span><em class="cnt">12,3 JT</em></li>
  <li><span class="ico_subscribe"></span><em class="cnt">456 RB</em></li>
</ul>
<p class="day_info">Baca Tiap SABTU</p>
<span class="age_text">Remaja</span>
<div class="ly_creator_in">
  <h3 class="title">Han Kyoung Chal</h3>
  <h3 class="title">Kim Illust</h3>
</div>
<ul id="_listUl">
  <li class="_episodeItem" id="episode_2">
    <a href="https://m.webtoons.com/id/action/spirit-fingers/ep-2/viewer?title_no=1577&episode_no=2">
      <span class="thmb"><img src="https://thumb/ep2.jpg"></span>
      <p class="subj"><span>Episode 2</span></p>
      <span class="date">3 Mar 2024</span>
      <span class="like_area">like 1.234</span>
      <span class="tx">#2</span>
    </a>
  </li>
  <li class="_episodeItem" id="episode_1">
    <a href="https://m.webtoons.com/id/action/spirit-fingers/ep-1/viewer?title_no=1577&episode_no=1">
      <span class="date">1 Mar 2024</span>
      <span class="tx">#1</span>
    </a>
  </li>
</ul>
<div class="detail_other">
  <ul class="lst_type1">
    <li><a href="/id/romance/other/list?title_no=9">
      <span class="pic_area"><img src="https://thumb/other.jpg"></span>
      <p class="subj">Other Title</p><p class="author">Someone</p><p class="grade_num">1 JT</p></a></li>
  </ul>
</div>
</body></html>`

const detailNoStatsHTML = `<html><body>
<div class="detail_header"><h1 class="subj">Bare</h1></div>
<div class="ly_creator_in"><h3 class="title">Solo Artist</h3></div>
</body></html>`

const readerHTML = `<html><body>
<div class="viewer_header"><p class="subj">Spirit Fingers</p><p class="title">Episode 1</p></div>
<div id="_viewer_area">
  <div class="viewer_img"><img src="https://static/bg_transparency.png" data-url="https://cdn/panel1.jpg"></div>
  <div class="viewer_img"><img src="https://cdn/panel2.jpg"></div>
  <div class="viewer_img"><img></div>
  <div class="viewer_img"><img data-url="https://cdn/panel3.jpg"></div>
</div>
<div class="viewer_img"><img src="https://cdn/outside.jpg"></div>
</body></html>`

type fakeCall struct {
	URL  string
	Opts fetch.Options
}

// fakeFetcher serves canned responses keyed by exact URL. Unknown URLs 404.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]*fetch.Response
	calls []fakeCall
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]*fetch.Response{}}
}

func (f *fakeFetcher) page(u, body string) *fakeFetcher {
	f.pages[u] = &fetch.Response{URL: u, Status: http.StatusOK, Header: http.Header{}, Body: []byte(body)}
	return f
}

func (f *fakeFetcher) redirect(u, location string) *fakeFetcher {
	h := http.Header{}
	if location != "" {
		h.Set("Location", location)
	}
	f.pages[u] = &fetch.Response{URL: u, Status: http.StatusFound, Header: h}
	return f
}

func (f *fakeFetcher) Fetch(_ context.Context, u string, opts fetch.Options) (*fetch.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fakeCall{URL: u, Opts: opts})

	res, ok := f.pages[u]
	if !ok {
		return nil, &fetch.StatusError{URL: u, Status: http.StatusNotFound}
	}
	if res.IsRedirect() && opts.FollowRedirects {
		return f.pagesFollow(res)
	}

	return res, nil
}

func (f *fakeFetcher) pagesFollow(res *fetch.Response) (*fetch.Response, error) {
	for i := 0; i < 10 && res.IsRedirect(); i++ {
		next, ok := f.pages[res.Location()]
		if !ok {
			return nil, &fetch.StatusError{URL: res.Location(), Status: http.StatusNotFound}
		}
		res = next
	}

	return res, nil
}

func newTestClient(f fetch.Fetcher) *Client {
	return NewClient(f, Config{}, nil)
}

func mustParse(t *testing.T, html string) markup.Node {
	t.Helper()

	doc, err := markup.Parse([]byte(html))
	require.NoError(t, err)

	return doc
}
