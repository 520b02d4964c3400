// ABOUTME: Tests for one-shot detection
// ABOUTME: Covers input validation, buffer handling and result shape
package meowtalk

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/meowtalk-labs/meowtalk-go/pkg/classify"
)

// countingClassifier records every Match call for invocation checks
type countingClassifier struct {
	calls   int
	lastVec classify.Vector
	emotion string
	conf    float64
}

func (c *countingClassifier) Match(v classify.Vector) (string, float64) {
	c.calls++
	c.lastVec = v
	return c.emotion, c.conf
}

func sineSamples(freq float64, sampleRate, n int) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return samples
}

func testDetector(t *testing.T) (*Detector, *countingClassifier) {
	t.Helper()
	cls := &countingClassifier{emotion: "content", conf: 0.8}
	d, err := NewDetectorWithClassifier(cls, Config{})
	if err != nil {
		t.Fatalf("failed to create detector: %v", err)
	}
	return d, cls
}

func TestProcessAudioEmpty(t *testing.T) {
	d, cls := testDetector(t)

	_, err := d.ProcessAudio(nil)
	if !errors.Is(err, ErrEmptyAudio) {
		t.Errorf("expected ErrEmptyAudio, got %v", err)
	}
	_, err = d.ProcessAudio([]float32{})
	if !errors.Is(err, ErrEmptyAudio) {
		t.Errorf("expected ErrEmptyAudio, got %v", err)
	}
	if cls.calls != 0 {
		t.Errorf("classifier invoked %d times for empty input", cls.calls)
	}
}

func TestProcessAudioClassifiesOnce(t *testing.T) {
	d, cls := testDetector(t)

	result, err := d.ProcessAudio(sineSamples(440, DefaultSampleRate, 4096))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if cls.calls != 1 {
		t.Errorf("expected exactly one classification, got %d", cls.calls)
	}
	if result.Emotion != "content" || result.Confidence != 0.8 {
		t.Errorf("unexpected result %s/%f", result.Emotion, result.Confidence)
	}
	if result.Metadata.AudioLength != 4096 {
		t.Errorf("expected audio length 4096, got %d", result.Metadata.AudioLength)
	}
	if result.Timestamp == 0 {
		t.Error("expected a timestamp")
	}
}

func TestProcessAudioDoesNotMutateInput(t *testing.T) {
	d, _ := testDetector(t)

	samples := sineSamples(220, DefaultSampleRate, 2048)
	original := make([]float32, len(samples))
	copy(original, samples)

	if _, err := d.ProcessAudio(samples); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	for i := range samples {
		if samples[i] != original[i] {
			t.Fatalf("input mutated at sample %d: %f != %f",
				i, samples[i], original[i])
		}
	}
}

func TestProcessAudioInputCanBeReusedAfterReturn(t *testing.T) {
	d, cls := testDetector(t)

	samples := sineSamples(220, DefaultSampleRate, 2048)
	if _, err := d.ProcessAudio(samples); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	firstVec := cls.lastVec

	// Overwriting the caller's buffer after return must not change what a
	// later identical call sees
	for i := range samples {
		samples[i] = 0
	}

	fresh := sineSamples(220, DefaultSampleRate, 2048)
	if _, err := d.ProcessAudio(fresh); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if cls.lastVec != firstVec {
		t.Error("feature vector differs for identical input")
	}
}

func TestProcessAudioRejectsNonFinite(t *testing.T) {
	d, cls := testDetector(t)

	samples := sineSamples(220, DefaultSampleRate, 1024)
	samples[512] = float32(math.NaN())

	_, err := d.ProcessAudio(samples)
	if !errors.Is(err, ErrSampleOutOfRange) {
		t.Errorf("expected ErrSampleOutOfRange, got %v", err)
	}
	if cls.calls != 0 {
		t.Errorf("classifier invoked %d times for invalid input", cls.calls)
	}
}

func TestResultJSON(t *testing.T) {
	d, _ := testDetector(t)

	result, err := d.ProcessAudio(sineSamples(440, DefaultSampleRate, 4096))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(result.JSON()), &decoded); err != nil {
		t.Fatalf("result JSON does not parse: %v", err)
	}
	if decoded["emotion"] != "content" {
		t.Errorf("expected emotion in JSON, got %v", decoded["emotion"])
	}
	if _, ok := decoded["metadata"]; !ok {
		t.Error("expected metadata in JSON")
	}
	if _, ok := decoded["streamId"]; ok {
		t.Error("streamId should be omitted for one-shot results")
	}
}

func TestNewDetectorValidation(t *testing.T) {
	cls := &countingClassifier{emotion: "content", conf: 0.8}

	if _, err := NewDetectorWithClassifier(nil, Config{}); err == nil {
		t.Error("expected error for nil classifier")
	}
	if _, err := NewDetectorWithClassifier(cls, Config{SampleRate: 100}); err == nil {
		t.Error("expected error for invalid sample rate")
	}
	if _, err := NewDetectorWithClassifier(cls, Config{WindowSize: -1}); err == nil {
		t.Error("expected error for negative window size")
	}
	if _, err := NewDetector(Config{}); err == nil {
		t.Error("expected error for missing library path")
	}
}

func TestDetectorDefaults(t *testing.T) {
	d, _ := testDetector(t)

	if d.SampleRate() != DefaultSampleRate {
		t.Errorf("expected default sample rate, got %d", d.SampleRate())
	}
	if d.WindowSize() != DefaultWindowSize {
		t.Errorf("expected default window size, got %d", d.WindowSize())
	}
}
