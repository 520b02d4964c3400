// ABOUTME: Tests for streaming result smoothing
// ABOUTME: Covers EWMA behavior, outlier rejection and emotion switching
package meowtalk

import (
	"math"
	"testing"
)

func TestSmootherFirstObservation(t *testing.T) {
	s := NewSmoother(0.3)

	emotion, conf := s.Observe("content", 0.8)
	if emotion != "content" || conf != 0.8 {
		t.Errorf("expected content/0.8, got %s/%f", emotion, conf)
	}
}

func TestSmootherEWMA(t *testing.T) {
	s := NewSmoother(0.5)

	s.Observe("content", 0.8)
	_, conf := s.Observe("content", 0.4)

	// 0.8 + 0.5*(0.4-0.8) = 0.6
	if math.Abs(conf-0.6) > 1e-9 {
		t.Errorf("expected 0.6, got %f", conf)
	}
}

func TestSmootherRejectsSingleOutlier(t *testing.T) {
	s := NewSmoother(0.3)

	s.Observe("content", 0.8)
	emotion, conf := s.Observe("distressed", 0.9)

	if emotion != "content" {
		t.Errorf("single dissent should not switch emotion, got %s", emotion)
	}
	if conf >= 0.8 {
		t.Errorf("expected confidence decay, got %f", conf)
	}
}

func TestSmootherSwitchesOnConsecutiveDissent(t *testing.T) {
	s := NewSmoother(0.3)

	s.Observe("content", 0.8)
	s.Observe("distressed", 0.9)
	emotion, conf := s.Observe("distressed", 0.9)

	if emotion != "distressed" || conf != 0.9 {
		t.Errorf("expected switch to distressed/0.9, got %s/%f", emotion, conf)
	}
}

func TestSmootherAgreementResetsDissent(t *testing.T) {
	s := NewSmoother(0.3)

	s.Observe("content", 0.8)
	s.Observe("distressed", 0.9)
	s.Observe("content", 0.8)
	emotion, _ := s.Observe("distressed", 0.9)

	if emotion != "content" {
		t.Errorf("interleaved dissent should not switch, got %s", emotion)
	}
}

func TestSmootherInvalidRateFallsBack(t *testing.T) {
	for _, rate := range []float64{0, -1, 1.5} {
		s := NewSmoother(rate)
		if s.rate != DefaultSmoothingRate {
			t.Errorf("rate %f: expected default, got %f", rate, s.rate)
		}
	}
}

func TestSmootherReset(t *testing.T) {
	s := NewSmoother(0.3)
	s.Observe("content", 0.8)
	s.Reset()

	emotion, conf := s.Current()
	if emotion != "" || conf != 0 {
		t.Errorf("expected empty state after reset, got %s/%f", emotion, conf)
	}
}
