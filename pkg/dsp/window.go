// ABOUTME: Window functions for spectral analysis
// ABOUTME: Hamming and Hann windows plus float32 conversion helper
package dsp

import "math"

// FromFloat32 converts float32 PCM to the float64 samples dsp works on
func FromFloat32(samples []float32) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}

// HammingWindow returns a Hamming window of length n
func HammingWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// HannWindow returns a Hann window of length n
func HannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// ApplyWindow multiplies samples by a window, returning a new slice
func ApplyWindow(samples, window []float64) []float64 {
	n := len(samples)
	if len(window) < n {
		n = len(window)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = samples[i] * window[i]
	}
	return out
}
