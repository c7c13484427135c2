// ABOUTME: Remote video fetcher with a temp-dir cache
// ABOUTME: Lets the CLI narrate http(s) URLs as if they were local files
package media

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultMaxBytes caps fetched video size at 2 GiB
const DefaultMaxBytes = int64(2 << 30)

// Fetcher downloads remote videos into a cache directory keyed by URL
// hash, so repeated runs against the same URL reuse the local copy.
type Fetcher struct {
	cacheDir string
	maxBytes int64
	client   *http.Client
}

// NewFetcher creates a fetcher caching under the system temp directory
func NewFetcher() (*Fetcher, error) {
	cacheDir := filepath.Join(os.TempDir(), "cinevoice-media")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Fetcher{
		cacheDir: cacheDir,
		maxBytes: DefaultMaxBytes,
		client:   &http.Client{Timeout: 10 * time.Minute},
	}, nil
}

// IsRemote reports whether the video argument is an http(s) URL
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Fetch downloads the URL to the cache and returns the local path.
// A cached copy is reused without touching the network.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("empty video URL")
	}

	hash := sha256.Sum256([]byte(url))
	filename := fmt.Sprintf("%x%s", hash[:8], extensionFor(url))
	cachePath := filepath.Join(f.cacheDir, filename)

	if _, err := os.Stat(cachePath); err == nil {
		log.Printf("Video cache hit: %s", cachePath)
		return cachePath, nil
	}

	log.Printf("Fetching video: %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video fetch failed: HTTP %d", resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return "", fmt.Errorf("video too large: %d bytes (limit %d)", resp.ContentLength, f.maxBytes)
	}

	out, err := os.Create(cachePath)
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}

	n, err := io.Copy(out, io.LimitReader(resp.Body, f.maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(cachePath)
		return "", fmt.Errorf("failed to save video: %w", err)
	}
	if n > f.maxBytes {
		os.Remove(cachePath)
		return "", fmt.Errorf("video too large: exceeds %d bytes", f.maxBytes)
	}

	log.Printf("Video saved: %s (%d bytes)", cachePath, n)
	return cachePath, nil
}

// Cleanup removes the cache directory
func (f *Fetcher) Cleanup() error {
	return os.RemoveAll(f.cacheDir)
}

// extensionFor extracts the file extension from a URL
func extensionFor(url string) string {
	url = strings.Split(url, "?")[0]

	ext := filepath.Ext(url)
	if ext == "" {
		ext = ".mp4"
	}
	return ext
}
