// ABOUTME: Resampling package for sample-rate conversion
// ABOUTME: Linear interpolation over mono float32 PCM
// Package resample converts mono PCM between sample rates using linear
// interpolation.
package resample
