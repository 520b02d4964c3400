// ABOUTME: Opus audio encoder
// ABOUTME: Encodes float32 samples to Opus packets
package encode

import (
	"fmt"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// OpusEncoder encodes Opus audio
type OpusEncoder struct {
	encoder   *opus.Encoder
	channels  int
	frameSize int
}

// NewOpus creates a new Opus encoder
func NewOpus(format audio.Format) (Encoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus encoder: %s", format.Codec)
	}

	encoder, err := opus.NewEncoder(format.SampleRate, format.Channels, opus.AppVoIP)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}

	// 20ms frames
	frameSize := format.SampleRate / 50 * format.Channels

	return &OpusEncoder{
		encoder:   encoder,
		channels:  format.Channels,
		frameSize: frameSize,
	}, nil
}

// FrameSize returns the number of samples each Encode call expects
func (e *OpusEncoder) FrameSize() int {
	return e.frameSize
}

// Encode converts one frame of float32 samples to an Opus packet
func (e *OpusEncoder) Encode(samples []float32) ([]byte, error) {
	if len(samples) != e.frameSize {
		return nil, fmt.Errorf("opus frame must be %d samples, got %d", e.frameSize, len(samples))
	}

	data := make([]byte, 4000) // Max Opus packet size
	n, err := e.encoder.EncodeFloat32(samples, data)
	if err != nil {
		return nil, fmt.Errorf("opus encode error: %w", err)
	}

	return data[:n], nil
}

// Close releases resources
func (e *OpusEncoder) Close() error {
	return nil
}
