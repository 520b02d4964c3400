// ABOUTME: MP3 file loader
// ABOUTME: Decodes MP3 recordings to mono float32 clips
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
)

// LoadMP3 reads an MP3 file into a mono clip
func LoadMP3(path string) (*audio.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	// go-mp3 always outputs interleaved 16-bit stereo
	var samples []float32
	buf := make([]byte, 8192)
	for {
		n, err := decoder.Read(buf)
		if n > 0 {
			numSamples := n / 2
			for i := 0; i < numSamples; i++ {
				sample16 := int16(binary.LittleEndian.Uint16(buf[i*2:]))
				samples = append(samples, audio.SampleFromInt16(sample16))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3 decode error: %w", err)
		}
	}

	return &audio.Clip{
		Samples:    audio.DownmixStereo(samples),
		SampleRate: decoder.SampleRate(),
	}, nil
}
