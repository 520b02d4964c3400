// ABOUTME: Signal processing package for feature extraction
// ABOUTME: Windows, FFT and the acoustic features used for classification
// Package dsp extracts the acoustic features that drive emotion
// classification: zero-crossing rate, energy, RMS, autocorrelation pitch,
// FFT peak frequency, spectral centroid and spectral rolloff.
//
// The Extractor works on mono float64 samples; convert float32 PCM with
// FromFloat32 first. Windowing is the caller's choice: streaming sessions
// apply a Hamming window per analysis window, one-shot classification runs
// on the raw clip.
package dsp
