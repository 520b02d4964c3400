// ABOUTME: Emotion sample library with persistence and matching
// ABOUTME: Blends nearest-sample and mahalanobis scoring across emotions
package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
)

// Scoring weights for the blended match
const (
	nearestWeight      = 0.6
	distributionWeight = 0.4
)

// EmotionSamples stores every labelled sample for one emotion plus its
// distribution statistics
type EmotionSamples struct {
	Emotion  string   `json:"emotion"`
	Features []Vector `json:"features"`
	Mean     Vector   `json:"mean"`
	StdDev   Vector   `json:"stdDev"`

	stale bool
}

// Library is a thread-safe collection of emotion samples
type Library struct {
	mu       sync.RWMutex
	emotions map[string]*EmotionSamples
}

// NewLibrary creates an empty sample library
func NewLibrary() *Library {
	return &Library{
		emotions: make(map[string]*EmotionSamples),
	}
}

// AddSample adds a labelled feature vector
func (l *Library) AddSample(emotion string, v Vector) {
	l.mu.Lock()
	defer l.mu.Unlock()

	samples, ok := l.emotions[emotion]
	if !ok {
		samples = &EmotionSamples{Emotion: emotion}
		l.emotions[emotion] = samples
	}
	samples.Features = append(samples.Features, v)
	samples.stale = true
}

// Emotions returns the labels present in the library
func (l *Library) Emotions() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	labels := make([]string, 0, len(l.emotions))
	for label := range l.emotions {
		labels = append(labels, label)
	}
	return labels
}

// SampleCount returns the total number of stored samples
func (l *Library) SampleCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, samples := range l.emotions {
		count += len(samples.Features)
	}
	return count
}

// Match finds the best-matching emotion for a feature vector.
// Returns the label and a confidence score in (0, 1]; an empty library
// returns ("", 0).
func (l *Library) Match(v Vector) (string, float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var bestMatch string
	maxScore := -1.0

	for emotion, samples := range l.emotions {
		if len(samples.Features) == 0 {
			continue
		}
		samples.refreshStats()

		// Nearest labelled sample
		minDistance := math.MaxFloat64
		for _, sample := range samples.Features {
			if d := EuclideanDistance(v, sample); d < minDistance {
				minDistance = d
			}
		}

		// Distance from the emotion's distribution
		mahalanobis := MahalanobisDistance(v, samples.Mean, samples.StdDev)

		score := nearestWeight*(1.0/(1.0+minDistance)) +
			distributionWeight*(1.0/(1.0+mahalanobis))

		if score > maxScore {
			maxScore = score
			bestMatch = emotion
		}
	}

	if bestMatch == "" {
		return "", 0
	}
	return bestMatch, maxScore
}

// refreshStats recomputes mean and standard deviation after new samples.
// Caller holds the library lock.
func (s *EmotionSamples) refreshStats() {
	if !s.stale {
		return
	}

	count := float64(len(s.Features))

	var sum [vectorDim]float64
	for _, f := range s.Features {
		vals := f.values()
		for i := 0; i < vectorDim; i++ {
			sum[i] += vals[i]
		}
	}

	var mean [vectorDim]float64
	for i := 0; i < vectorDim; i++ {
		mean[i] = sum[i] / count
	}

	var sumSq [vectorDim]float64
	for _, f := range s.Features {
		vals := f.values()
		for i := 0; i < vectorDim; i++ {
			d := vals[i] - mean[i]
			sumSq[i] += d * d
		}
	}

	var stdDev [vectorDim]float64
	for i := 0; i < vectorDim; i++ {
		stdDev[i] = math.Sqrt(sumSq[i] / count)
	}

	s.Mean = vectorFromValues(mean)
	s.StdDev = vectorFromValues(stdDev)
	s.stale = false
}

// Save writes the library as JSON
func (l *Library) Save(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, samples := range l.emotions {
		samples.refreshStats()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(l.emotions)
}

// SaveFile writes the library to a JSON file
func (l *Library) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create library file: %w", err)
	}
	defer f.Close()

	if err := l.Save(f); err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}
	return nil
}

// Load reads a library from JSON
func Load(r io.Reader) (*Library, error) {
	emotions := make(map[string]*EmotionSamples)
	if err := json.NewDecoder(r).Decode(&emotions); err != nil {
		return nil, fmt.Errorf("failed to decode library: %w", err)
	}

	for label, samples := range emotions {
		if samples == nil {
			delete(emotions, label)
			continue
		}
		if samples.Emotion == "" {
			samples.Emotion = label
		}
		samples.stale = true
	}

	return &Library{emotions: emotions}, nil
}

// LoadFile reads a library from a JSON file
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library file: %w", err)
	}
	defer f.Close()

	return Load(f)
}
