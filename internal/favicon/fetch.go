package favicon

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// maxIconBytes caps the body read for a single icon.
const maxIconBytes = 1 << 20

// Fetcher loads icon images over HTTP. At most Concurrency loads run at once.
type Fetcher struct {
	client *http.Client
	sem    chan struct{}
}

// NewFetcher creates a Fetcher with the given concurrency bound and timeout.
func NewFetcher(concurrency int, timeout time.Duration) *Fetcher {
	if concurrency <= 0 {
		concurrency = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		sem: make(chan struct{}, concurrency),
	}
}

// Load fetches and decodes the image at iconURL.
func (f *Fetcher) Load(ctx context.Context, iconURL string) (image.Image, error) {
	select {
	case f.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-f.sem }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iconURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch icon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch icon: %s", http.StatusText(resp.StatusCode))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("fetch icon: unexpected content type %q", ct)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}
	return img, nil
}

// Result holds the outcome of loading one icon address.
type Result struct {
	IconURL string
	Image   image.Image
	Err     error
}

// ProgressFunc is called after each icon is loaded.
type ProgressFunc func(completed, total int)

// LoadAll loads every address with a pool of workers and returns the
// results in input order.
func (f *Fetcher) LoadAll(ctx context.Context, iconURLs []string, onProgress ProgressFunc) []Result {
	if len(iconURLs) == 0 {
		return nil
	}

	results := make([]Result, len(iconURLs))
	jobs := make(chan int, len(iconURLs))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < cap(f.sem); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				img, err := f.Load(ctx, iconURLs[idx])
				results[idx] = Result{IconURL: iconURLs[idx], Image: img, Err: err}

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(iconURLs))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range iconURLs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
