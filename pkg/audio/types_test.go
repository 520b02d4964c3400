// ABOUTME: Tests for audio types
// ABOUTME: Tests sample conversion and clip helpers
package audio

import (
	"testing"
	"time"
)

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected float32
	}{
		{"zero", 0, 0},
		{"positive", 16384, 0.5},
		{"negative", -16384, -0.5},
		{"min", -32768, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestSampleToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"zero", 0, 0},
		{"positive", 0.5, 16383},
		{"max", 1.0, 32767},
		{"clip high", 2.0, 32767},
		{"clip low", -2.0, -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleRoundTrip(t *testing.T) {
	// A 16-bit sample should survive the round trip within one LSB
	for _, sample := range []int16{0, 1, -1, 100, -100, 32000, -32000} {
		back := SampleToInt16(SampleFromInt16(sample))
		diff := int(back) - int(sample)
		if diff < -1 || diff > 1 {
			t.Errorf("sample %d round-tripped to %d", sample, back)
		}
	}
}

func TestDownmixStereo(t *testing.T) {
	stereo := []float32{1.0, 0.0, 0.5, 0.5, -1.0, 1.0}
	mono := DownmixStereo(stereo)

	expected := []float32{0.5, 0.5, 0.0}
	if len(mono) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(mono))
	}
	for i := range expected {
		if mono[i] != expected[i] {
			t.Errorf("sample %d: expected %f, got %f", i, expected[i], mono[i])
		}
	}
}

func TestClipDuration(t *testing.T) {
	clip := &Clip{
		Samples:    make([]float32, 44100),
		SampleRate: 44100,
	}
	if clip.Duration() != time.Second {
		t.Errorf("expected 1s, got %v", clip.Duration())
	}

	empty := &Clip{SampleRate: 0}
	if empty.Duration() != 0 {
		t.Errorf("expected 0 for invalid rate, got %v", empty.Duration())
	}
}

func TestValidSampleRate(t *testing.T) {
	tests := []struct {
		rate  int
		valid bool
	}{
		{8000, true},
		{44100, true},
		{48000, true},
		{4000, false},
		{96000, false},
		{0, false},
	}

	for _, tt := range tests {
		if got := ValidSampleRate(tt.rate); got != tt.valid {
			t.Errorf("ValidSampleRate(%d): expected %v, got %v", tt.rate, tt.valid, got)
		}
	}
}
