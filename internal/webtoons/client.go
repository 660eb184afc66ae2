// Package webtoons turns pages of the WEBTOON comics platform into typed
// records: landing rankings, search hits, title details and reader panels.
//
// Every operation is stateless. A non-nil error is the only failure signal;
// markup that is simply missing yields empty fields instead.
package webtoons

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/brogergvhs/toond/internal/fetch"
	"github.com/brogergvhs/toond/internal/markup"
)

const (
	DefaultDesktopBase  = "https://www.webtoons.com"
	DefaultMobileBase   = "https://m.webtoons.com"
	DefaultLocale       = "id"
	DefaultDetailSlug   = "action/title"
	DefaultMaxRedirects = 5
)

var (
	ErrRedirectNoLocation = errors.New("redirect without location")
	ErrTooManyRedirects   = errors.New("too many redirects")
	// ErrNoImages is what callers report when a reader page parsed fine but
	// held no panels.
	ErrNoImages = errors.New("no images found")
)

var schedulePrefixes = map[string]string{
	"id": "Baca Tiap ",
}

type Config struct {
	DesktopBase    string
	MobileBase     string
	Locale         string
	UserAgent      string
	MaxRedirects   int
	SchedulePrefix string
	DetailSlug     string
}

type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

type Client struct {
	fetcher fetch.Fetcher
	cfg     Config
	headers map[string]string
	log     Logger
}

func NewClient(f fetch.Fetcher, cfg Config, log Logger) *Client {
	if cfg.DesktopBase == "" {
		cfg.DesktopBase = DefaultDesktopBase
	}
	if cfg.MobileBase == "" {
		cfg.MobileBase = DefaultMobileBase
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if cfg.DetailSlug == "" {
		cfg.DetailSlug = DefaultDetailSlug
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = DefaultMaxRedirects
	}
	if cfg.SchedulePrefix == "" {
		cfg.SchedulePrefix = schedulePrefixes[cfg.Locale]
	}
	cfg.DesktopBase = strings.TrimRight(cfg.DesktopBase, "/")
	cfg.MobileBase = strings.TrimRight(cfg.MobileBase, "/")

	if log == nil {
		log = nopLogger{}
	}

	return &Client{
		fetcher: f,
		cfg:     cfg,
		headers: map[string]string{"User-Agent": fetch.PickUserAgent(cfg.UserAgent)},
		log:     log,
	}
}

// HomeURL is the landing page carrying the rankings.
func (c *Client) HomeURL() string {
	return c.cfg.DesktopBase + "/" + c.cfg.Locale + "/"
}

func (c *Client) SearchURL(query string) string {
	return c.cfg.MobileBase + "/" + c.cfg.Locale + "/search?" + url.Values{"keyword": {query}}.Encode()
}

// ListURL builds a title's episode list page. The platform ignores the
// genre/slug path segments, only title_no matters.
func (c *Client) ListURL(titleNo int) string {
	return c.cfg.MobileBase + "/" + c.cfg.Locale + "/" + strings.Trim(c.cfg.DetailSlug, "/") +
		"/list?title_no=" + strconv.Itoa(titleNo)
}

func (c *Client) document(ctx context.Context, target string) (markup.Node, error) {
	c.log.Debugf("GET %s\n", target)

	res, err := c.fetcher.Fetch(ctx, target, fetch.Options{
		Headers:         c.headers,
		FollowRedirects: true,
	})
	if err != nil {
		return nil, err
	}

	return markup.Parse(res.Body)
}

// resolveMobile makes a redirect location absolute against the mobile origin.
func (c *Client) resolveMobile(loc string) string {
	u, err := url.Parse(loc)
	if err != nil {
		return c.cfg.MobileBase + loc
	}
	if u.IsAbs() {
		return u.String()
	}

	base, err := url.Parse(c.cfg.MobileBase + "/")
	if err != nil {
		return c.cfg.MobileBase + loc
	}

	return base.ResolveReference(u).String()
}

func wrap(op, target string, err error) error {
	return fmt.Errorf("%s %s: %w", op, target, err)
}
