// ABOUTME: Tests for the sample library
// ABOUTME: Covers matching, statistics and JSON persistence
package classify

import (
	"bytes"
	"path/filepath"
	"testing"
)

// testLibrary builds a library with two well-separated emotions
func testLibrary() *Library {
	lib := NewLibrary()

	// "content": low pitch, low energy
	lib.AddSample("content", Vector{Pitch: 150, Energy: 0.1, ZeroCrossRate: 0.05})
	lib.AddSample("content", Vector{Pitch: 160, Energy: 0.12, ZeroCrossRate: 0.06})
	lib.AddSample("content", Vector{Pitch: 155, Energy: 0.11, ZeroCrossRate: 0.055})

	// "distressed": high pitch, high energy
	lib.AddSample("distressed", Vector{Pitch: 600, Energy: 0.6, ZeroCrossRate: 0.3})
	lib.AddSample("distressed", Vector{Pitch: 650, Energy: 0.65, ZeroCrossRate: 0.35})
	lib.AddSample("distressed", Vector{Pitch: 620, Energy: 0.62, ZeroCrossRate: 0.32})

	return lib
}

func TestMatchPicksNearestEmotion(t *testing.T) {
	lib := testLibrary()

	emotion, confidence := lib.Match(Vector{Pitch: 158, Energy: 0.11, ZeroCrossRate: 0.05})
	if emotion != "content" {
		t.Errorf("expected content, got %s", emotion)
	}
	if confidence <= 0 || confidence > 1 {
		t.Errorf("confidence out of range: %f", confidence)
	}

	emotion, _ = lib.Match(Vector{Pitch: 630, Energy: 0.6, ZeroCrossRate: 0.3})
	if emotion != "distressed" {
		t.Errorf("expected distressed, got %s", emotion)
	}
}

func TestMatchEmptyLibrary(t *testing.T) {
	lib := NewLibrary()
	emotion, confidence := lib.Match(Vector{Pitch: 200})
	if emotion != "" || confidence != 0 {
		t.Errorf("expected empty match, got %q/%f", emotion, confidence)
	}
}

func TestExactSampleScoresHigher(t *testing.T) {
	lib := testLibrary()

	_, exact := lib.Match(Vector{Pitch: 150, Energy: 0.1, ZeroCrossRate: 0.05})
	_, distant := lib.Match(Vector{Pitch: 300, Energy: 0.3, ZeroCrossRate: 0.15})

	if exact <= distant {
		t.Errorf("expected exact sample to score higher: %f vs %f", exact, distant)
	}
}

func TestSampleCountAndEmotions(t *testing.T) {
	lib := testLibrary()

	if lib.SampleCount() != 6 {
		t.Errorf("expected 6 samples, got %d", lib.SampleCount())
	}

	labels := lib.Emotions()
	if len(labels) != 2 {
		t.Errorf("expected 2 emotions, got %v", labels)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	lib := testLibrary()

	var buf bytes.Buffer
	if err := lib.Save(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.SampleCount() != lib.SampleCount() {
		t.Errorf("expected %d samples after round trip, got %d",
			lib.SampleCount(), loaded.SampleCount())
	}

	// Matching must behave identically after the round trip
	emotion, _ := loaded.Match(Vector{Pitch: 158, Energy: 0.11, ZeroCrossRate: 0.05})
	if emotion != "content" {
		t.Errorf("expected content after round trip, got %s", emotion)
	}
}

func TestSaveLoadFile(t *testing.T) {
	lib := testLibrary()
	path := filepath.Join(t.TempDir(), "library.json")

	if err := lib.SaveFile(path); err != nil {
		t.Fatalf("save file failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file failed: %v", err)
	}

	if loaded.SampleCount() != 6 {
		t.Errorf("expected 6 samples, got %d", loaded.SampleCount())
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load(bytes.NewReader([]byte("not json"))); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/library.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
