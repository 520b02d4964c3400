// ABOUTME: Confidence smoothing for streaming results
// ABOUTME: EWMA over confidence with single-outlier rejection on the label
package meowtalk

const (
	// DefaultSmoothingRate is the EWMA weight given to each new observation
	DefaultSmoothingRate = 0.3

	// dissentThreshold is how many consecutive disagreeing windows it takes
	// to switch the reported emotion
	dissentThreshold = 2
)

// Smoother stabilizes streaming classification output. One window that
// disagrees with the established emotion is treated as an outlier; the
// reported confidence follows an exponentially weighted moving average.
type Smoother struct {
	rate float64

	emotion    string
	confidence float64
	dissents   int
}

// NewSmoother creates a smoother. Rates outside (0, 1] fall back to the
// default.
func NewSmoother(rate float64) *Smoother {
	if rate <= 0 || rate > 1 {
		rate = DefaultSmoothingRate
	}
	return &Smoother{rate: rate}
}

// Observe folds one raw classification into the smoothed state and returns
// the smoothed emotion and confidence.
func (s *Smoother) Observe(emotion string, confidence float64) (string, float64) {
	if s.emotion == "" {
		s.emotion = emotion
		s.confidence = confidence
		return s.emotion, s.confidence
	}

	if emotion == s.emotion {
		s.dissents = 0
		s.confidence += s.rate * (confidence - s.confidence)
		return s.emotion, s.confidence
	}

	s.dissents++
	if s.dissents < dissentThreshold {
		// Single outlier, hold the established emotion and decay confidence
		s.confidence *= 1 - s.rate
		return s.emotion, s.confidence
	}

	// The stream has genuinely changed
	s.emotion = emotion
	s.confidence = confidence
	s.dissents = 0
	return s.emotion, s.confidence
}

// Current returns the smoothed state without observing anything
func (s *Smoother) Current() (string, float64) {
	return s.emotion, s.confidence
}

// Reset clears the smoothed state
func (s *Smoother) Reset() {
	s.emotion = ""
	s.confidence = 0
	s.dissents = 0
}
