// ABOUTME: Audio type definitions
// ABOUTME: Defines formats, clips and float32 sample conversions
package audio

import "time"

const (
	// MinSampleRate is the lowest sample rate the SDK accepts
	MinSampleRate = 8000

	// MaxSampleRate is the highest sample rate the SDK accepts
	MaxSampleRate = 48000
)

// Format describes an audio stream format
type Format struct {
	Codec      string // "pcm" or "opus"
	SampleRate int
	Channels   int
	BitDepth   int
}

// Clip represents decoded mono PCM audio
type Clip struct {
	Samples    []float32 // Normalized to [-1, 1)
	SampleRate int
}

// Duration returns the clip length in wall time
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	seconds := float64(len(c.Samples)) / float64(c.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// SampleFromInt16 converts a 16-bit PCM sample to normalized float32
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / 32768.0
}

// SampleToInt16 converts a normalized float32 sample to 16-bit PCM with clipping
func SampleToInt16(sample float32) int16 {
	scaled := sample * 32767.0
	if scaled > 32767.0 {
		return 32767
	}
	if scaled < -32768.0 {
		return -32768
	}
	return int16(scaled)
}

// DownmixStereo averages interleaved stereo samples into mono
func DownmixStereo(samples []float32) []float32 {
	mono := make([]float32, len(samples)/2)
	for i := range mono {
		mono[i] = (samples[i*2] + samples[i*2+1]) / 2
	}
	return mono
}

// ValidSampleRate reports whether a sample rate is within the supported range
func ValidSampleRate(rate int) bool {
	return rate >= MinSampleRate && rate <= MaxSampleRate
}
