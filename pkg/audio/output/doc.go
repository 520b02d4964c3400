// ABOUTME: Audio playback package used to audition library samples
// ABOUTME: Provides an Output interface with an oto-backed implementation
// Package output plays mono or stereo float32 PCM through the system audio
// device. The analyze CLI uses it to audition recordings while their features
// are printed.
package output
