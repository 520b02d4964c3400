// ABOUTME: FLAC file loader
// ABOUTME: Decodes FLAC recordings to mono float32 clips
package decode

import (
	"fmt"
	"io"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
	"github.com/mewkiz/flac"
)

// LoadFLAC reads a FLAC file into a mono clip
func LoadFLAC(path string) (*audio.Clip, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}

	// Normalization factor for the stream's bit depth
	scale := float32(int64(1) << (info.BitsPerSample - 1))

	var samples []float32
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac frame parse error: %w", err)
		}

		blockSize := int(frame.BlockSize)
		for i := 0; i < blockSize; i++ {
			var sum float32
			for ch := 0; ch < channels; ch++ {
				sum += float32(frame.Subframes[ch].Samples[i]) / scale
			}
			samples = append(samples, sum/float32(channels))
		}
	}

	return &audio.Clip{
		Samples:    samples,
		SampleRate: int(info.SampleRate),
	}, nil
}
