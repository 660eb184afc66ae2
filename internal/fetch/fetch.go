// Package fetch performs the outbound GET requests for every extractor with a
// fixed request identity, optionally without following redirects.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

type Options struct {
	Headers         map[string]string
	FollowRedirects bool
}

type Response struct {
	URL    string
	Status int
	Header http.Header
	Body   []byte
}

func (r *Response) IsRedirect() bool {
	return r.Status >= 300 && r.Status < 400
}

func (r *Response) Location() string {
	return r.Header.Get("Location")
}

// StatusError reports a response outside the 2xx/3xx range.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Status, e.URL)
}

// Fetcher is the capability the extractors depend on.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options) (*Response, error)
}

type ClientOptions struct {
	Timeout          time.Duration
	UserAgent        string
	Cookie           string
	CookieFile       string
	Retries          int
	CloudflareBypass bool
	Transport        http.RoundTripper
	DebugLogger      interface {
		Debugf(string, ...any)
	}
}

// Client is the resty-backed Fetcher. It holds one client that follows
// redirects and one that hands 3xx responses back to the caller. Neither
// keeps a cookie jar: the only cookies sent are the configured ones, so no
// call sees cookies set during another.
type Client struct {
	follow *resty.Client
	direct *resty.Client
}

func New(opts ClientOptions) (*Client, error) {
	var base http.RoundTripper
	if opts.Transport != nil {
		base = opts.Transport
	} else {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxConnsPerHost:     100,
			MaxIdleConnsPerHost: 100,
			ForceAttemptHTTP2:   true,
		}
	}

	if opts.CloudflareBypass {
		base = cloudflarebp.AddCloudFlareByPass(base)
	}

	rt := roundTripper{
		base:         base,
		ua:           PickUserAgent(opts.UserAgent),
		cookieHeader: joinCookies(opts.Cookie, opts.CookieFile),
		log:          opts.DebugLogger,
	}

	newResty := func() *resty.Client {
		rc := resty.NewWithClient(&http.Client{
			Transport: rt,
			Timeout:   opts.Timeout,
		})
		rc.SetRetryCount(opts.Retries).
			SetRetryWaitTime(500 * time.Millisecond).
			AddRetryCondition(func(r *resty.Response, _ error) bool {
				return r != nil && r.StatusCode() >= 500
			})

		return rc
	}

	c := &Client{
		follow: newResty(),
		direct: newResty(),
	}
	c.direct.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client initialized (timeout=%s, ua=%q, retries=%d, cloudflare=%t)\n",
			opts.Timeout, rt.ua, opts.Retries, opts.CloudflareBypass)
	}

	return c, nil
}

// HTTPClient exposes the redirect-following client for plain downloads.
func (c *Client) HTTPClient() *http.Client {
	return c.follow.GetClient()
}

func (c *Client) Fetch(ctx context.Context, target string, opts Options) (*Response, error) {
	rc := c.direct
	if opts.FollowRedirects {
		rc = c.follow
	}

	res, err := rc.R().
		SetContext(ctx).
		SetHeaders(opts.Headers).
		Get(target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}

	status := res.StatusCode()
	if status < 200 || status >= 400 {
		return nil, &StatusError{URL: target, Status: status}
	}

	return &Response{
		URL:    target,
		Status: status,
		Header: res.Header(),
		Body:   res.Body(),
	}, nil
}
