// ABOUTME: WAV file loader
// ABOUTME: Parses RIFF chunks and reads 16-bit PCM into a Clip
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
)

// LoadWAV reads a 16-bit PCM WAV file into a mono clip
func LoadWAV(path string) (*audio.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}
	defer f.Close()

	return ReadWAV(f)
}

// ReadWAV parses WAV data from a reader
func ReadWAV(r io.Reader) (*audio.Clip, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a WAV file")
	}

	var (
		sampleRate int
		channels   int
		bitDepth   int
		data       []byte
		haveFmt    bool
	)

	// Walk chunks until we have both fmt and data
	for {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}

		chunkID := string(header[0:4])
		chunkSize := binary.LittleEndian.Uint32(header[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			if len(body) < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes", len(body))
			}
			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			if audioFormat != 1 {
				return nil, fmt.Errorf("unsupported WAV encoding: %d (PCM only)", audioFormat)
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFmt = true

		case "data":
			data = make([]byte, chunkSize)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("failed to read data chunk: %w", err)
			}

		default:
			// Skip unknown chunks (LIST, fact, ...). Chunks are word aligned.
			skip := int64(chunkSize)
			if skip%2 != 0 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, fmt.Errorf("failed to skip %s chunk: %w", chunkID, err)
			}
		}

		if haveFmt && data != nil {
			break
		}
	}

	if !haveFmt {
		return nil, fmt.Errorf("WAV file missing fmt chunk")
	}
	if data == nil {
		return nil, fmt.Errorf("WAV file missing data chunk")
	}
	if bitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", bitDepth)
	}
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}

	numSamples := len(data) / 2
	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}

	if channels == 2 {
		samples = audio.DownmixStereo(samples)
	}

	return &audio.Clip{
		Samples:    samples,
		SampleRate: sampleRate,
	}, nil
}
