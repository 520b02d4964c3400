// ABOUTME: One-shot emotion detection over complete audio buffers
// ABOUTME: Copies input, extracts features, matches against the library
package meowtalk

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
	"github.com/meowtalk-labs/meowtalk-go/pkg/classify"
	"github.com/meowtalk-labs/meowtalk-go/pkg/dsp"
)

const (
	// DefaultSampleRate matches the capture rate of the mobile recorder
	DefaultSampleRate = 44100

	// DefaultWindowSize is the streaming analysis window in samples
	DefaultWindowSize = 4096
)

// Classifier matches a feature vector to an emotion label with a confidence
type Classifier interface {
	Match(v classify.Vector) (string, float64)
}

// Config holds detector configuration
type Config struct {
	// SampleRate of incoming audio (default: 44100)
	SampleRate int

	// WindowSize for streaming sessions, in samples (default: 4096)
	WindowSize int

	// LibraryPath is the JSON sample library to load
	LibraryPath string
}

// Result is one classification outcome
type Result struct {
	StreamID   string  `json:"streamId,omitempty"`
	Timestamp  int64   `json:"timestamp"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Metadata   Meta    `json:"metadata"`
}

// Meta carries the evidence behind a result
type Meta struct {
	AudioLength int             `json:"audioLength"`
	Features    classify.Vector `json:"features"`
}

// JSON returns the result as JSON text
func (r Result) JSON() string {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(data)
}

// Detector classifies cat vocalizations against a sample library
type Detector struct {
	config     Config
	extractor  *dsp.Extractor
	classifier Classifier
}

// NewDetector creates a detector backed by a sample library file
func NewDetector(config Config) (*Detector, error) {
	if config.LibraryPath == "" {
		return nil, fmt.Errorf("sample library path not specified")
	}

	library, err := classify.LoadFile(config.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sample library: %w", err)
	}
	if library.SampleCount() == 0 {
		return nil, fmt.Errorf("sample library is empty")
	}

	return NewDetectorWithClassifier(library, config)
}

// NewDetectorWithClassifier creates a detector with a caller-supplied
// classifier, typically a pre-built classify.Library
func NewDetectorWithClassifier(classifier Classifier, config Config) (*Detector, error) {
	if config.SampleRate == 0 {
		config.SampleRate = DefaultSampleRate
	}
	if config.WindowSize == 0 {
		config.WindowSize = DefaultWindowSize
	}

	if !audio.ValidSampleRate(config.SampleRate) {
		return nil, fmt.Errorf("invalid sample rate: %d", config.SampleRate)
	}
	if config.WindowSize <= 0 {
		return nil, fmt.Errorf("invalid window size: %d", config.WindowSize)
	}
	if classifier == nil {
		return nil, fmt.Errorf("classifier is nil")
	}

	return &Detector{
		config:     config,
		extractor:  dsp.NewExtractor(config.SampleRate),
		classifier: classifier,
	}, nil
}

// SampleRate returns the configured sample rate
func (d *Detector) SampleRate() int {
	return d.config.SampleRate
}

// WindowSize returns the configured streaming window size
func (d *Detector) WindowSize() int {
	return d.config.WindowSize
}

// ProcessAudio classifies one complete buffer.
//
// The buffer is copied before any processing and is never retained past
// return; the classifier is invoked exactly once per call. An empty buffer
// is rejected with ErrEmptyAudio.
func (d *Detector) ProcessAudio(samples []float32) (Result, error) {
	if len(samples) == 0 {
		return Result{}, ErrEmptyAudio
	}

	// The caller's buffer is only borrowed for the duration of this call
	buf := make([]float32, len(samples))
	copy(buf, samples)

	for _, s := range buf {
		if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
			return Result{}, ErrSampleOutOfRange
		}
	}

	features := d.extractor.Extract(dsp.FromFloat32(buf))
	vector := classify.VectorFromFeatures(features)
	emotion, confidence := d.classifier.Match(vector)

	return Result{
		Timestamp:  time.Now().Unix(),
		Emotion:    emotion,
		Confidence: confidence,
		Metadata: Meta{
			AudioLength: len(buf),
			Features:    vector,
		},
	}, nil
}
