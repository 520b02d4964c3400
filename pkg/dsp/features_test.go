// ABOUTME: Tests for feature extraction
// ABOUTME: Uses synthetic tones with known acoustic properties
package dsp

import (
	"math"
	"testing"
)

// sine generates a test tone
func sine(freq float64, sampleRate, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return samples
}

func TestExtractEmpty(t *testing.T) {
	e := NewExtractor(44100)
	f := e.Extract(nil)
	if f.Energy != 0 || f.Pitch != 0 {
		t.Errorf("expected zero features for empty input, got %+v", f)
	}
}

func TestExtractDuration(t *testing.T) {
	e := NewExtractor(44100)
	f := e.Extract(make([]float64, 44100))
	if math.Abs(f.Duration-1.0) > 1e-9 {
		t.Errorf("expected 1s duration, got %f", f.Duration)
	}
}

func TestExtractPitch(t *testing.T) {
	// 220Hz is inside the 50-1000Hz search range
	e := NewExtractor(44100)
	f := e.Extract(sine(220, 44100, 8192))

	// Autocorrelation lag quantization limits precision
	if math.Abs(f.Pitch-220) > 5 {
		t.Errorf("expected pitch near 220Hz, got %.1fHz", f.Pitch)
	}
}

func TestExtractPeakFrequency(t *testing.T) {
	e := NewExtractor(44100)
	f := e.Extract(sine(440, 44100, 4096))

	binWidth := 44100.0 / 4096.0
	if math.Abs(f.PeakFreq-440) > binWidth*2 {
		t.Errorf("expected peak near 440Hz, got %.1fHz", f.PeakFreq)
	}
}

func TestExtractEnergy(t *testing.T) {
	e := NewExtractor(44100)

	// Mean square of a unit sine is 0.5
	f := e.Extract(sine(440, 44100, 44100))
	if math.Abs(f.Energy-0.5) > 0.01 {
		t.Errorf("expected energy near 0.5, got %f", f.Energy)
	}
	if math.Abs(f.RootMeanSquare-math.Sqrt(0.5)) > 0.01 {
		t.Errorf("expected RMS near 0.707, got %f", f.RootMeanSquare)
	}

	silent := e.Extract(make([]float64, 1024))
	if silent.Energy != 0 {
		t.Errorf("expected zero energy for silence, got %f", silent.Energy)
	}
}

func TestZeroCrossRate(t *testing.T) {
	// Alternating signal crosses on every sample
	samples := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	zcr := ZeroCrossRate(samples)
	if math.Abs(zcr-7.0/8.0) > 1e-9 {
		t.Errorf("expected ZCR 0.875, got %f", zcr)
	}

	// Constant signal never crosses
	if ZeroCrossRate([]float64{1, 1, 1, 1}) != 0 {
		t.Error("expected zero ZCR for constant signal")
	}
}

func TestHigherToneHasHigherCentroid(t *testing.T) {
	e := NewExtractor(44100)

	low := e.Extract(sine(200, 44100, 4096))
	high := e.Extract(sine(2000, 44100, 4096))

	if high.SpectralCentroid <= low.SpectralCentroid {
		t.Errorf("expected higher centroid for higher tone: %.1f vs %.1f",
			high.SpectralCentroid, low.SpectralCentroid)
	}
	if high.SpectralRolloff <= low.SpectralRolloff {
		t.Errorf("expected higher rolloff for higher tone: %.1f vs %.1f",
			high.SpectralRolloff, low.SpectralRolloff)
	}
}
