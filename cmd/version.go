package cmd

import (
	"fmt"

	"github.com/brogergvhs/toond/internal/fetch"
	"github.com/brogergvhs/toond/internal/webtoons"

	"github.com/spf13/cobra"
)

var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the toond version and the site it targets by default",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("toond version:", Version)
		fmt.Printf(" -locale: %s\n", webtoons.DefaultLocale)
		fmt.Printf(" -desktop_base: %s\n", webtoons.DefaultDesktopBase)
		fmt.Printf(" -mobile_base: %s\n", webtoons.DefaultMobileBase)
		fmt.Printf(" -max_redirects: %d\n", webtoons.DefaultMaxRedirects)
		fmt.Printf(" -user_agent: %s\n", fetch.DefaultUserAgent)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
