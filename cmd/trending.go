package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/toond/internal/webtoons"

	"github.com/spf13/cobra"
)

var (
	flagPopular bool
	flagLimit   int
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show the trending (or popular) ranking from the landing page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		listing, err := s.wt.Listing(context.Background())
		if err != nil {
			return err
		}

		entries := listing.Trending
		if flagPopular {
			entries = listing.Popular
		}
		if flagLimit > 0 && len(entries) > flagLimit {
			entries = entries[:flagLimit]
		}

		if flagJSON {
			return printJSON(entries)
		}

		return printRanked(entries)
	},
}

func printRanked(entries []webtoons.RankedEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tTITLE\tGENRE\tTITLE NO")

	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", e.Rank, e.Title, e.Genre, e.TitleID)
	}

	return w.Flush()
}

func init() {
	trendingCmd.Flags().BoolVar(&flagPopular, "popular", false, "show the popular ranking instead")
	trendingCmd.Flags().IntVar(&flagLimit, "limit", 10, "number of entries to show (0 for all)")
	trendingCmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON")

	rootCmd.AddCommand(trendingCmd)
}
