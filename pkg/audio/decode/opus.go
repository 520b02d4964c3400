// ABOUTME: Opus audio chunk decoder
// ABOUTME: Decodes Opus packets to float32 samples
package decode

import (
	"fmt"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// OpusDecoder decodes Opus audio
type OpusDecoder struct {
	decoder  *opus.Decoder
	channels int
}

// NewOpus creates a new Opus decoder
func NewOpus(format audio.Format) (Decoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus decoder: %s", format.Codec)
	}

	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &OpusDecoder{
		decoder:  dec,
		channels: format.Channels,
	}, nil
}

// Decode converts an Opus packet to mono float32 samples
func (d *OpusDecoder) Decode(data []byte) ([]float32, error) {
	// Max Opus frame is 120ms at 48kHz
	pcm := make([]float32, 5760*d.channels)

	n, err := d.decoder.DecodeFloat32(data, pcm)
	if err != nil {
		return nil, fmt.Errorf("opus decode failed: %w", err)
	}

	samples := pcm[:n*d.channels]
	if d.channels == 2 {
		return audio.DownmixStereo(samples), nil
	}

	out := make([]float32, n)
	copy(out, samples)
	return out, nil
}

// Close releases decoder resources
func (d *OpusDecoder) Close() error {
	return nil
}
