package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brogergvhs/toond/internal/downloader"
	"github.com/brogergvhs/toond/internal/episodes"
	"github.com/brogergvhs/toond/internal/ui"
	"github.com/brogergvhs/toond/internal/util"
	"github.com/brogergvhs/toond/internal/webtoons"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagRange string
	flagList  string

	// runtime
	flagOutput         string
	flagImageWorkers   int
	flagEpisodeWorkers int
	flagKeepFolders    bool
	flagDryRun         bool
	flagSkipBroken     bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download episodes and produce CBZ files. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.NoArgs,
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().IntVar(&flagTitleNo, "title-no", 0, "numeric title id")
	downloadCmd.Flags().StringVar(&flagURL, "url", "", "episode list page URL")
	downloadCmd.Flags().StringVar(&flagEpisode, "episode", "", "download single episode by number label or index (e.g. 5)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download range of episodes by index, oldest first (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific episode indices (e.g. 1,3,5)")
	downloadCmd.Flags().BoolVar(&flagPick, "pick", false, "choose episodes interactively")
	downloadCmd.MarkFlagsMutuallyExclusive("title-no", "url")
	downloadCmd.MarkFlagsMutuallyExclusive("episode", "range", "list", "pick")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	downloadCmd.Flags().IntVar(&flagImageWorkers, "image-workers", 0, "parallel panel downloads per episode")
	downloadCmd.Flags().IntVar(&flagEpisodeWorkers, "episode-workers", 0, "parallel episode downloads")
	downloadCmd.Flags().BoolVar(&flagKeepFolders, "keep-folders", false, "keep temporary folders")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")
	downloadCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "skip failed panels instead of failing the whole episode")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	opts := baseOptions()
	opts.Output = flagOutput
	opts.ImageWorkers = flagImageWorkers
	opts.EpisodeWorkers = flagEpisodeWorkers
	opts.KeepFolders = flagKeepFolders
	opts.SkipBroken = flagSkipBroken

	s, err := newSession(opts)
	if err != nil {
		return err
	}
	cfg, logSvc := s.cfg, s.log

	fmt.Printf("Config file: %s\n", s.used)
	if cfg.Debug {
		fmt.Println("Full config:")
		cfg.Print(os.Stdout)
		fmt.Println()
	}

	target, err := s.listURL(flagTitleNo, flagURL)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	ctx, cancel := util.SetupInterruptHandler(context.Background(), cfg.Output)
	defer cancel()

	detail, err := s.wt.Detail(ctx, target)
	if err != nil {
		return err
	}

	all := episodes.FromDetail(detail)
	fmt.Printf("%s: %d episodes on the list page.\n\n", detail.Title, len(all))

	var selected []episodes.Episode
	if flagPick {
		selected, err = pickEpisodes(all, true)
		if err != nil {
			return err
		}
	} else {
		selected = episodes.Filter(all, flagEpisode, flagRange, flagList)
	}

	if len(selected) == 0 {
		return fmt.Errorf("no episodes selected")
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d episodes selected.\n\n", len(selected))
		for i, ep := range selected {
			fmt.Printf("%3d) %s  [%s]\n    %s\n", i+1, ep.Title, ep.Label(), ep.Link)
		}
		return nil
	}

	pm := ui.NewProgressManager(os.Stdout)

	stats := &ui.Stats{}
	dl := downloader.New(s.http.HTTPClient(), cfg.DesktopBase+"/", cfg.SkipBroken)
	start := time.Now()

	sem := make(chan struct{}, max(1, cfg.EpisodeWorkers))
	var wg sync.WaitGroup

	for _, ep := range selected {
		ep := ep
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := downloadEpisode(ctx, s, dl, pm, ep, stats); err != nil {
				stats.Failed.Add(1)
				logSvc.Errorf("Episode %s failed: %v\n", ep.Label(), err)
			}
		}()
	}
	wg.Wait()
	pm.Close()

	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Episodes: %d\n", stats.TotalEpisodes.Load())
	fmt.Printf("Panels:   %d\n", stats.TotalPanels.Load())
	fmt.Printf("Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Second))

	if n := stats.Failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d episodes failed", n, len(selected))
	}

	fmt.Println("\nAll done.")
	return nil
}

func downloadEpisode(
	ctx context.Context,
	s *session,
	dl *downloader.Downloader,
	pm *ui.ProgressManager,
	ep episodes.Episode,
	stats *ui.Stats,
) error {
	if ep.Link == "" {
		return fmt.Errorf("no viewer link")
	}

	res, err := s.wt.Reader(ctx, ep.Link)
	if err != nil {
		return err
	}
	if res.ImageCount == 0 {
		return webtoons.ErrNoImages
	}

	handle := pm.Register("Ep." + ep.Label())
	handle.SetTotal(res.ImageCount)

	tmpFolder := filepath.Join(s.cfg.Output, ep.FolderName())
	cbzOut := ep.OutputCBZPath(s.cfg.Output)

	files, bytes, err := dl.DownloadPanels(ctx, res.Images, tmpFolder, s.cfg.ImageWorkers, handle)
	if err != nil {
		handle.Abort()
		util.CleanupFolder(tmpFolder)
		return err
	}

	if err := util.CreateCBZ(files, cbzOut); err != nil {
		util.CleanupFolder(tmpFolder)
		return fmt.Errorf("CBZ: %w", err)
	}

	if !s.cfg.KeepFolders {
		util.CleanupFolder(tmpFolder)
	}

	handle.MarkDone()
	stats.TotalEpisodes.Add(1)
	stats.TotalPanels.Add(int64(len(files)))
	stats.TotalBytes.Add(bytes)

	return nil
}
