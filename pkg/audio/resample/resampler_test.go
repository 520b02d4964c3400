// ABOUTME: Tests for the linear resampler
// ABOUTME: Verifies rate conversion ratios and interpolation
package resample

import (
	"math"
	"testing"
)

func TestResampleDownsample(t *testing.T) {
	// 2:1 downsample of a ramp
	input := []float32{0, 1, 2, 3, 4, 5, 6, 7}
	r := New(48000, 24000)

	output := make([]float32, r.OutputSamplesNeeded(len(input)))
	n := r.Resample(input, output)

	if n == 0 {
		t.Fatal("expected output samples")
	}

	// Every output sample should land on an even input value
	for i := 0; i < n; i++ {
		expected := float32(i * 2)
		if output[i] != expected {
			t.Errorf("sample %d: expected %f, got %f", i, expected, output[i])
		}
	}
}

func TestResampleUpsampleInterpolates(t *testing.T) {
	input := []float32{0, 1}
	r := New(1000, 2000)

	output := make([]float32, 4)
	n := r.Resample(input, output)

	if n < 2 {
		t.Fatalf("expected at least 2 output samples, got %d", n)
	}
	if output[0] != 0 {
		t.Errorf("expected first sample 0, got %f", output[0])
	}
	if math.Abs(float64(output[1])-0.5) > 1e-6 {
		t.Errorf("expected interpolated 0.5, got %f", output[1])
	}
}

func TestResampleEmptyInput(t *testing.T) {
	r := New(44100, 48000)
	output := make([]float32, 16)
	if n := r.Resample(nil, output); n != 0 {
		t.Errorf("expected 0 samples for empty input, got %d", n)
	}
}

func TestResampleSmallOutputKeepsInput(t *testing.T) {
	// Same-rate passthrough: every consumed input value must reappear even
	// when the output buffer fills before the input is exhausted
	input := []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	r := New(8000, 8000)

	out := make([]float32, 3)
	var got []float32

	n := r.Resample(input, out)
	got = append(got, out[:n]...)
	for {
		n = r.Resample(nil, out)
		if n == 0 {
			break
		}
		got = append(got, out[:n]...)
	}

	// Only the final sample may be held back for boundary interpolation
	want := []float32{0, 1, 2, 3, 4, 5, 6, 7, 8}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestResampleResetDropsPending(t *testing.T) {
	r := New(8000, 8000)
	out := make([]float32, 2)
	r.Resample([]float32{1, 2, 3, 4}, out)

	r.Reset()
	if n := r.Resample(nil, out); n != 0 {
		t.Errorf("expected no samples after Reset, got %d", n)
	}
}

func TestConvertSameRate(t *testing.T) {
	input := []float32{0.1, 0.2, 0.3}
	output := Convert(input, 44100, 44100)

	if len(output) != len(input) {
		t.Fatalf("expected %d samples, got %d", len(input), len(output))
	}

	// Must be a copy, not an alias
	output[0] = 9
	if input[0] == 9 {
		t.Error("Convert aliased its input at equal rates")
	}
}

func TestConvertPreservesDuration(t *testing.T) {
	input := make([]float32, 44100) // 1 second
	output := Convert(input, 44100, 16000)

	// Allow a few samples of slack at the chunk edge
	if len(output) < 15900 || len(output) > 16000 {
		t.Errorf("expected about 16000 samples, got %d", len(output))
	}
}
