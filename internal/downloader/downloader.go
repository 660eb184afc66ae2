// Package downloader fetches an episode's panel images concurrently into a
// working folder.
package downloader

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Progress receives panel counts and bytes as downloads advance.
type Progress interface {
	Update(done, total int, bytes int64)
	MarkDone()
}

type Downloader struct {
	client     *http.Client
	referer    string
	skipBroken bool
	attempts   int
	backoff    time.Duration
}

// New builds a Downloader. The image CDN rejects requests without the
// platform as Referer.
func New(c *http.Client, referer string, skipBroken bool) *Downloader {
	return &Downloader{
		client:     c,
		referer:    referer,
		skipBroken: skipBroken,
		attempts:   3,
		backoff:    time.Second,
	}
}

type episodeState struct {
	mu     sync.Mutex
	done   int
	total  int
	bytes  int64
	failed []error
	files  []string
}

func (s *episodeState) finish(p Progress, file string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.done++
	if err != nil {
		s.failed = append(s.failed, err)
	} else {
		s.files = append(s.files, file)
	}
	p.Update(s.done, s.total, s.bytes)
}

func (s *episodeState) addBytes(p Progress, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bytes += delta
	p.Update(s.done, s.total, s.bytes)
}

// DownloadPanels saves urls as panel_001.ext, panel_002.ext, ... in folder
// using at most maxParallel workers. It returns the written files and bytes.
// p is marked done only when the episode succeeded.
func (d *Downloader) DownloadPanels(
	ctx context.Context,
	urls []string,
	folder string,
	maxParallel int,
	p Progress,
) ([]string, int64, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, 0, err
	}

	total := len(urls)
	maxParallel = max(1, min(maxParallel, total))

	st := &episodeState{total: total, files: make([]string, 0, total)}
	p.Update(0, total, 0)

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			out := filepath.Join(folder, fmt.Sprintf("panel_%03d%s", i+1, panelExt(urls[i])))

			var last int64
			progress := func(done int64) {
				if delta := done - last; delta > 0 {
					last = done
					st.addBytes(p, delta)
				}
			}

			err := d.downloadWithRetry(ctx, urls[i], out, progress)
			if err != nil {
				err = fmt.Errorf("panel %d: %w", i+1, err)
			}
			st.finish(p, out, err)
		}
	}

	wg.Add(maxParallel)
	for n := 0; n < maxParallel; n++ {
		go worker()
	}

	for i := range urls {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return st.files, st.bytes, ctx.Err()
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	if len(st.failed) > 0 && !d.skipBroken {
		return st.files, st.bytes, fmt.Errorf("failed %d/%d panels (use --skip-broken to continue): %w",
			len(st.failed), total, st.failed[0])
	}

	p.MarkDone()
	return st.files, st.bytes, nil
}

func panelExt(raw string) string {
	ext := ".jpg"
	if u, err := url.Parse(raw); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" {
			ext = e
		}
	}

	return ext
}

func (d *Downloader) downloadWithRetry(ctx context.Context, u, output string, progress func(done int64)) error {
	var err error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		err = d.download(ctx, u, output, progress)
		if err == nil {
			return nil
		}
		if attempt == d.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * d.backoff):
		}
	}

	return err
}

func (d *Downloader) download(ctx context.Context, u, output string, progress func(done int64)) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	if d.referer != "" {
		req.Header.Set("Referer", d.referer)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	if _, err := copyWithProgress(f, resp.Body, progress); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
