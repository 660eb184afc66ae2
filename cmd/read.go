package cmd

import (
	"context"
	"fmt"

	"github.com/brogergvhs/toond/internal/episodes"
	"github.com/brogergvhs/toond/internal/webtoons"

	"github.com/spf13/cobra"
)

var (
	flagEpisode string
	flagPick    bool
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Print an episode's panel image URLs in reading order",
	Long: "Print an episode's panel image URLs in reading order.\n\n" +
		"Pass a viewer URL with --url, or a title with --title-no and then --episode or --pick.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		ctx := context.Background()

		viewer := flagURL
		if viewer == "" {
			if flagTitleNo <= 0 {
				return fmt.Errorf("missing --url or --title-no")
			}

			ep, err := chooseEpisode(ctx, s, flagTitleNo)
			if err != nil {
				return err
			}
			viewer = ep.Link
		}

		res, err := s.wt.Reader(ctx, viewer)
		if err != nil {
			return err
		}
		if res.ImageCount == 0 {
			return fmt.Errorf("%s: %w", viewer, webtoons.ErrNoImages)
		}

		if flagJSON {
			return printJSON(res)
		}

		fmt.Printf("%s - %s (%d panels)\n", res.Title, res.EpisodeTitle, res.ImageCount)
		for _, img := range res.Images {
			fmt.Println(img)
		}

		return nil
	},
}

func chooseEpisode(ctx context.Context, s *session, titleNo int) (episodes.Episode, error) {
	d, err := s.wt.Detail(ctx, s.wt.ListURL(titleNo))
	if err != nil {
		return episodes.Episode{}, err
	}

	all := episodes.FromDetail(d)

	var selected []episodes.Episode
	switch {
	case flagPick:
		selected, err = pickEpisodes(all, false)
		if err != nil {
			return episodes.Episode{}, err
		}
	case flagEpisode != "":
		selected = episodes.Filter(all, flagEpisode, "", "")
	default:
		return episodes.Episode{}, fmt.Errorf("missing --episode or --pick")
	}

	if len(selected) == 0 {
		return episodes.Episode{}, fmt.Errorf("episode '%s' not found", flagEpisode)
	}
	if selected[0].Link == "" {
		return episodes.Episode{}, fmt.Errorf("episode '%s' has no viewer link", selected[0].Label())
	}

	return selected[0], nil
}

func init() {
	readCmd.Flags().StringVar(&flagURL, "url", "", "episode viewer URL")
	readCmd.Flags().IntVar(&flagTitleNo, "title-no", 0, "numeric title id")
	readCmd.Flags().StringVar(&flagEpisode, "episode", "", "episode by number label or 1-based index (oldest first)")
	readCmd.Flags().BoolVar(&flagPick, "pick", false, "choose the episode interactively")
	readCmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON")
	readCmd.MarkFlagsMutuallyExclusive("url", "title-no")
	readCmd.MarkFlagsMutuallyExclusive("episode", "pick")

	rootCmd.AddCommand(readCmd)
}
