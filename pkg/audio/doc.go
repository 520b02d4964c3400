// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Clip types and sample conversion functions
// Package audio provides fundamental audio types and utilities for the MeowTalk SDK.
//
// This package defines core types used throughout the library:
//   - Format: Describes an audio stream format (codec, sample rate, channels, bit depth)
//   - Clip: Represents decoded mono PCM audio as normalized float32 samples
//
// It also provides utilities for converting between sample representations:
//   - int16 PCM ↔ normalized float32 conversions
//   - stereo → mono downmixing
//
// Example:
//
//	clip := &audio.Clip{
//	    Samples:    samples,
//	    SampleRate: 44100,
//	}
//	fmt.Println(clip.Duration())
package audio
