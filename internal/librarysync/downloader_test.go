// ABOUTME: Tests for the library downloader
// ABOUTME: Uses httptest servers, covers caching and validation
package librarysync

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meowtalk-labs/meowtalk-go/pkg/classify"
)

func libraryJSON(t *testing.T) []byte {
	t.Helper()

	lib := classify.NewLibrary()
	lib.AddSample("content", classify.Vector{Pitch: 150, Energy: 0.1})
	lib.AddSample("hungry", classify.Vector{Pitch: 400, Energy: 0.4})

	var buf bytes.Buffer
	if err := lib.Save(&buf); err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}
	return buf.Bytes()
}

func newDownloader(t *testing.T) *Downloader {
	t.Helper()
	d, err := NewDownloaderAt(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create downloader: %v", err)
	}
	return d
}

func TestFetchAndCache(t *testing.T) {
	data := libraryJSON(t)
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(data)
	}))
	defer ts.Close()

	d := newDownloader(t)

	lib, path, err := d.Fetch(ts.URL + "/meows.json")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if lib.SampleCount() != 2 {
		t.Errorf("expected 2 samples, got %d", lib.SampleCount())
	}
	if path == "" {
		t.Error("expected a cache path")
	}

	// Second fetch must come from cache
	if _, _, err := d.Fetch(ts.URL + "/meows.json"); err != nil {
		t.Fatalf("cached fetch failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected 1 HTTP hit, got %d", hits)
	}
}

func TestFetchRejectsInvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a library"))
	}))
	defer ts.Close()

	d := newDownloader(t)
	if _, _, err := d.Fetch(ts.URL); err == nil {
		t.Error("expected error for invalid library")
	}
}

func TestFetchRejectsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	d := newDownloader(t)
	if _, _, err := d.Fetch(ts.URL); err == nil {
		t.Error("expected error for HTTP 404")
	}
}

func TestFetchRejectsEmptyURL(t *testing.T) {
	d := newDownloader(t)
	if _, _, err := d.Fetch(""); err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestFetchRejectsEmptyLibrary(t *testing.T) {
	lib := classify.NewLibrary()
	var buf bytes.Buffer
	if err := lib.Save(&buf); err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer ts.Close()

	d := newDownloader(t)
	if _, _, err := d.Fetch(ts.URL); err == nil {
		t.Error("expected error for empty library")
	}
}
