package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/toond/internal/config"
	"github.com/brogergvhs/toond/internal/fetch"
	"github.com/brogergvhs/toond/internal/ui"
	"github.com/brogergvhs/toond/internal/webtoons"
)

// session bundles what a command needs to talk to the platform.
type session struct {
	cfg  *config.Config
	used string
	log  *ui.Logger
	http *fetch.Client
	wt   *webtoons.Client
}

// baseOptions maps the persistent flags; commands add their own on top.
func baseOptions() config.Options {
	return config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Locale:       flagLocale,
		UserAgent:    flagUserAgent,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		Timeout:      flagTimeout,
		MaxRedirects: flagMaxRedirects,
	}
}

func newSession(opts config.Options) (*session, error) {
	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	// stdout carries command output (and JSON)
	logSvc := ui.NewLogger(cfg.Debug).WithOutput(os.Stderr)
	logSvc.Debugf("Config file: %s\n", used)

	client, err := fetch.New(fetch.ClientOptions{
		Timeout:          cfg.TimeoutDuration(),
		UserAgent:        cfg.UserAgent,
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		Retries:          cfg.Retries,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:  cfg,
		used: used,
		log:  logSvc,
		http: client,
		wt:   webtoons.NewClient(client, cfg.Client(), logSvc),
	}, nil
}

// listURL resolves a title from either --title-no or --url.
func (s *session) listURL(titleNo int, rawURL string) (string, error) {
	switch {
	case rawURL != "":
		return rawURL, nil
	case titleNo > 0:
		return s.wt.ListURL(titleNo), nil
	default:
		return "", errors.New("missing --title-no or --url")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return nil
}
