// ABOUTME: Acoustic feature extraction
// ABOUTME: Time and frequency domain features for vocalization classification
package dsp

import "math"

// Features holds the acoustic features extracted from one buffer
type Features struct {
	ZeroCrossRate    float64 // Sign changes per sample
	Energy           float64 // Mean squared amplitude
	RootMeanSquare   float64
	Pitch            float64 // Autocorrelation fundamental estimate (Hz)
	PeakFreq         float64 // FFT bin with the largest magnitude (Hz)
	SpectralCentroid float64 // Magnitude-weighted mean frequency (Hz)
	SpectralRolloff  float64 // Frequency below which 85% of energy lies (Hz)
	Duration         float64 // Buffer length in seconds
}

// Extractor computes features at a fixed sample rate
type Extractor struct {
	sampleRate int

	// Pitch search range in Hz
	pitchMin float64
	pitchMax float64
}

// NewExtractor creates a feature extractor.
// The pitch search covers 50Hz-1000Hz, which spans cat vocalizations.
func NewExtractor(sampleRate int) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		pitchMin:   50,
		pitchMax:   1000,
	}
}

// SampleRate returns the extractor's configured sample rate
func (e *Extractor) SampleRate() int {
	return e.sampleRate
}

// Extract computes all features for one buffer of mono samples
func (e *Extractor) Extract(samples []float64) Features {
	if len(samples) == 0 {
		return Features{}
	}

	spectrum := Spectrum(samples)

	return Features{
		ZeroCrossRate:    ZeroCrossRate(samples),
		Energy:           Energy(samples),
		RootMeanSquare:   math.Sqrt(Energy(samples)),
		Pitch:            e.estimatePitch(samples),
		PeakFreq:         e.peakFrequency(spectrum, len(samples)),
		SpectralCentroid: e.spectralCentroid(spectrum, len(samples)),
		SpectralRolloff:  e.spectralRolloff(spectrum, len(samples)),
		Duration:         float64(len(samples)) / float64(e.sampleRate),
	}
}

// ZeroCrossRate counts sign changes per sample
func ZeroCrossRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0 && samples[i] < 0) || (samples[i-1] < 0 && samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples))
}

// Energy computes mean squared amplitude
func Energy(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return sum / float64(len(samples))
}

// estimatePitch finds the fundamental frequency by autocorrelation
func (e *Extractor) estimatePitch(samples []float64) float64 {
	minLag := int(float64(e.sampleRate) / e.pitchMax)
	maxLag := int(float64(e.sampleRate) / e.pitchMin)

	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(samples) {
		maxLag = len(samples) - 1
	}
	if maxLag < minLag {
		return 0
	}

	var maxCorr float64
	bestLag := 0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for i := 0; i < len(samples)-lag; i++ {
			corr += samples[i] * samples[i+lag]
		}
		if corr > maxCorr {
			maxCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return 0
	}
	return float64(e.sampleRate) / float64(bestLag)
}

// binFrequency converts a spectrum bin index to Hz.
// fftSize is the padded transform length the spectrum came from.
func (e *Extractor) binFrequency(bin, sampleCount int) float64 {
	fftSize := NextPow2(sampleCount)
	return float64(bin) * float64(e.sampleRate) / float64(fftSize)
}

// peakFrequency finds the frequency with the largest magnitude
func (e *Extractor) peakFrequency(spectrum []float64, sampleCount int) float64 {
	maxMag := 0.0
	peak := 0
	for i, mag := range spectrum {
		if mag > maxMag {
			maxMag = mag
			peak = i
		}
	}
	return e.binFrequency(peak, sampleCount)
}

// spectralCentroid computes the magnitude-weighted mean frequency
func (e *Extractor) spectralCentroid(spectrum []float64, sampleCount int) float64 {
	var weighted, total float64
	for i, mag := range spectrum {
		weighted += e.binFrequency(i, sampleCount) * mag
		total += mag
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// spectralRolloff finds the frequency below which 85% of spectral energy lies
func (e *Extractor) spectralRolloff(spectrum []float64, sampleCount int) float64 {
	var total float64
	for _, mag := range spectrum {
		total += mag * mag
	}
	if total == 0 {
		return 0
	}

	threshold := 0.85 * total
	var cumulative float64
	for i, mag := range spectrum {
		cumulative += mag * mag
		if cumulative >= threshold {
			return e.binFrequency(i, sampleCount)
		}
	}
	return e.binFrequency(len(spectrum)-1, sampleCount)
}
