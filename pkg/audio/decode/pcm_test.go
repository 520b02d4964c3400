// ABOUTME: Tests for PCM chunk decoder
// ABOUTME: Tests 16-bit mono and stereo decoding
package decode

import (
	"testing"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 44100,
		Channels:   1,
		BitDepth:   16,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
}

func TestNewPCMInvalidCodec(t *testing.T) {
	format := audio.Format{
		Codec:      "opus",
		SampleRate: 44100,
		Channels:   1,
		BitDepth:   16,
	}

	if _, err := NewPCM(format); err == nil {
		t.Error("expected error for wrong codec")
	}
}

func TestNewPCMInvalidBitDepth(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 44100,
		Channels:   1,
		BitDepth:   24,
	}

	if _, err := NewPCM(format); err == nil {
		t.Error("expected error for unsupported bit depth")
	}
}

func TestPCMDecodeMono(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 44100,
		Channels:   1,
		BitDepth:   16,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// Two little-endian int16 samples: 0x4000 = 16384 (0.5), 0xC000 = -16384 (-0.5)
	input := []byte{0x00, 0x40, 0x00, 0xC0}
	output, err := decoder.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(output) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(output))
	}
	if output[0] != 0.5 {
		t.Errorf("expected first sample 0.5, got %f", output[0])
	}
	if output[1] != -0.5 {
		t.Errorf("expected second sample -0.5, got %f", output[1])
	}
}

func TestPCMDecodeStereoDownmix(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 44100,
		Channels:   2,
		BitDepth:   16,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// One stereo frame: left 0.5, right -0.5 -> mono 0.0
	input := []byte{0x00, 0x40, 0x00, 0xC0}
	output, err := decoder.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(output) != 1 {
		t.Fatalf("expected 1 mono sample, got %d", len(output))
	}
	if output[0] != 0 {
		t.Errorf("expected downmixed sample 0, got %f", output[0])
	}
}

func TestPCMDecodeUnaligned(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 44100,
		Channels:   1,
		BitDepth:   16,
	}

	decoder, _ := NewPCM(format)
	if _, err := decoder.Decode([]byte{0x00, 0x40, 0x00}); err == nil {
		t.Error("expected error for unaligned chunk")
	}
}
