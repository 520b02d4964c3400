// ABOUTME: PCM audio chunk decoder
// ABOUTME: Decodes 16-bit little-endian PCM to float32 samples
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
)

// PCMDecoder decodes 16-bit PCM audio
type PCMDecoder struct {
	channels int
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitDepth)
	}

	if format.Channels != 1 && format.Channels != 2 {
		return nil, fmt.Errorf("unsupported channel count: %d", format.Channels)
	}

	return &PCMDecoder{
		channels: format.Channels,
	}, nil
}

// Decode converts PCM bytes to mono float32 samples
func (d *PCMDecoder) Decode(data []byte) ([]float32, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("pcm chunk not sample aligned: %d bytes", len(data))
	}

	numSamples := len(data) / 2
	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}

	if d.channels == 2 {
		return audio.DownmixStereo(samples), nil
	}
	return samples, nil
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
