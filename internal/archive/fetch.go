// Package archive downloads compressed source trees and extracts them into a directory.
package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"wp-starter/internal/logger"
)

// Fetcher downloads archives over HTTP and extracts them.
type Fetcher struct {
	httpClient *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the archive at url and extracts it into dest, stripping a single
// top-level wrapper directory. dest is created when absent.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	format := DetectFormat(url)

	tmp, err := os.CreateTemp("", "wp-starter-*"+format)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	err = f.download(ctx, url, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if err := Extract(tmpPath, dest, format); err != nil {
		return fmt.Errorf("extract %s: %w", url, err)
	}
	return nil
}

// download writes the body served at url into out.
// It returns an error if the request, a non-200 status or the copy fails.
func (f *Fetcher) download(ctx context.Context, url string, out io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", "wp-starter")

	// Make an HTTP GET request to the given URL; redirects are followed by the client
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	// Ensure the response body stream is closed when the function returns
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Debug("[DEBUG] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s returned status %d", url, resp.StatusCode)
	}

	// Copy the entire response body (downloaded data) into the destination file
	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	logger.Debug("[DEBUG] Downloaded %d bytes from %s\n", n, url)
	return nil
}
