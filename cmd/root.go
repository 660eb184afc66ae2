package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool

	// request identity, shared by every command that talks to the platform
	flagLocale       string
	flagUserAgent    string
	flagCookie       string
	flagCookieFile   string
	flagTimeout      int
	flagMaxRedirects int

	flagJSON bool
)

var rootCmd = &cobra.Command{
	Use:           "toond",
	Short:         "WEBTOON scraper: rankings, search, title details, episode panels and CBZ downloads",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	pf.BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")

	pf.StringVar(&flagLocale, "locale", "", "site locale path segment (e.g. id, en)")
	pf.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	pf.StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	pf.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	pf.IntVar(&flagTimeout, "timeout", 0, "request timeout in seconds")
	pf.IntVar(&flagMaxRedirects, "max-redirects", 0, "redirect hops the reader follows before giving up")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
