package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/brogergvhs/toond/internal/webtoons"

	"github.com/spf13/cobra"
)

var (
	flagTitleNo int
	flagURL     string
)

var detailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Show a title's metadata and episode list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		target, err := s.listURL(flagTitleNo, flagURL)
		if err != nil {
			return err
		}

		d, err := s.wt.Detail(context.Background(), target)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(d)
		}

		printDetail(d)
		return nil
	},
}

func printDetail(d *webtoons.TitleDetail) {
	names := make([]string, 0, len(d.Authors))
	for _, a := range d.Authors {
		names = append(names, fmt.Sprintf("%s (%s)", a.Name, a.Role))
	}

	fmt.Println(d.Title)
	fmt.Printf(" -genre: %s\n", d.Genre)
	fmt.Printf(" -authors: %s\n", strings.Join(names, ", "))
	fmt.Printf(" -schedule: %s\n", d.UpdateSchedule)
	if d.AgeRating != "" {
		fmt.Printf(" -age rating: %s\n", d.AgeRating)
	}
	fmt.Printf(" -views: %s | subscribers: %s\n", d.Stats.Views, d.Stats.Subscribers)
	fmt.Println()
	fmt.Println(d.Description)
	fmt.Println()

	fmt.Printf("Episodes (%d)\n", len(d.Episodes))
	for _, e := range d.Episodes {
		fmt.Printf("  %-6s %s  (%s)\n", e.DisplayNumber, e.Title, e.Date)
	}

	if len(d.Recommendations) > 0 {
		fmt.Println()
		fmt.Println("You may also like")
		for _, r := range d.Recommendations {
			fmt.Printf("  %s by %s\n", r.Title, r.Author)
		}
	}
}

func init() {
	detailCmd.Flags().IntVar(&flagTitleNo, "title-no", 0, "numeric title id")
	detailCmd.Flags().StringVar(&flagURL, "url", "", "episode list page URL")
	detailCmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON")
	detailCmd.MarkFlagsMutuallyExclusive("title-no", "url")

	rootCmd.AddCommand(detailCmd)
}
