// Package fetch downloads recording inputs over HTTP with a fixed per-request
// timeout and no retries.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"diarbench/internal/fileutil"
)

// Downloader retrieves remote resources to local files.
type Downloader struct {
	client *http.Client
}

// NewDownloader builds a Downloader whose requests are bounded by timeout.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads url to dest. The file is written atomically; a failed
// download leaves no partial file behind. One attempt only.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	if err := fileutil.WriteAtomic(dest, resp.Body); err != nil {
		return fmt.Errorf("store %s: %w", dest, err)
	}
	return nil
}
