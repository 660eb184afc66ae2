package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/brogergvhs/toond/internal/webtoons"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search titles by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		res, err := s.wt.Search(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(res)
		}

		printHits("Originals", res.Original)
		fmt.Println()
		printHits("Canvas", res.Canvas)

		return nil
	},
}

func printHits(label string, hits []webtoons.SearchEntry) {
	fmt.Printf("%s (%d)\n", label, len(hits))

	for i, h := range hits {
		mark := ""
		if h.IsNew {
			mark = " [new]"
		}
		fmt.Printf("%3d) %s%s\n     %s | %s\n     %s\n", i+1, h.Title, mark, h.Author, h.ViewCount, h.Link)
	}
}

func init() {
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON")

	rootCmd.AddCommand(searchCmd)
}
