// ABOUTME: Sample library downloader
// ABOUTME: Fetches shared libraries over HTTP with a content-addressed cache
package librarysync

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/meowtalk-labs/meowtalk-go/pkg/classify"
)

// maxLibrarySize bounds a downloaded library file
const maxLibrarySize = 16 << 20

// Downloader fetches sample libraries and caches them by URL hash
type Downloader struct {
	cacheDir string
	client   *http.Client
}

// NewDownloader creates a downloader with a cache under the OS temp dir
func NewDownloader() (*Downloader, error) {
	cacheDir := filepath.Join(os.TempDir(), "meowtalk-libraries")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Downloader{
		cacheDir: cacheDir,
		client:   &http.Client{},
	}, nil
}

// NewDownloaderAt creates a downloader with an explicit cache directory
func NewDownloaderAt(cacheDir string) (*Downloader, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Downloader{
		cacheDir: cacheDir,
		client:   &http.Client{},
	}, nil
}

// Fetch downloads a library, validates it and returns the loaded library
// plus the cached file path. A cached copy is used when present.
func (d *Downloader) Fetch(url string) (*classify.Library, string, error) {
	if url == "" {
		return nil, "", fmt.Errorf("empty library URL")
	}

	hash := sha256.Sum256([]byte(url))
	cachePath := filepath.Join(d.cacheDir, fmt.Sprintf("%x.json", hash[:8]))

	if _, err := os.Stat(cachePath); err == nil {
		library, err := classify.LoadFile(cachePath)
		if err == nil {
			return library, cachePath, nil
		}
		// Corrupt cache entry, refetch
		log.Printf("Discarding corrupt cached library: %s", cachePath)
		os.Remove(cachePath)
	}

	resp, err := d.client.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("library download failed: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLibrarySize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read library: %w", err)
	}
	if len(data) > maxLibrarySize {
		return nil, "", fmt.Errorf("library exceeds %d bytes", maxLibrarySize)
	}

	// Validate before caching
	library, err := classify.Load(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("downloaded library is invalid: %w", err)
	}
	if library.SampleCount() == 0 {
		return nil, "", fmt.Errorf("downloaded library is empty")
	}

	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return nil, "", fmt.Errorf("failed to cache library: %w", err)
	}

	log.Printf("Library cached: %s (%d samples)", cachePath, library.SampleCount())
	return library, cachePath, nil
}

// Cleanup removes the cache directory
func (d *Downloader) Cleanup() error {
	return os.RemoveAll(d.cacheDir)
}
