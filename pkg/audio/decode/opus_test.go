// ABOUTME: Tests for Opus chunk decoder
// ABOUTME: Verifies decoder creation and format validation
package decode

import (
	"testing"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
)

func TestNewOpus(t *testing.T) {
	format := audio.Format{
		Codec:      "opus",
		SampleRate: 48000,
		Channels:   1,
		BitDepth:   16,
	}

	decoder, err := NewOpus(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}
	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
}

func TestNewOpusInvalidCodec(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 48000,
		Channels:   1,
		BitDepth:   16,
	}

	if _, err := NewOpus(format); err == nil {
		t.Error("expected error for wrong codec")
	}
}

func TestNewOpusInvalidSampleRate(t *testing.T) {
	format := audio.Format{
		Codec:      "opus",
		SampleRate: 44100, // Opus only supports 8/12/16/24/48 kHz
		Channels:   1,
		BitDepth:   16,
	}

	if _, err := NewOpus(format); err == nil {
		t.Error("expected error for unsupported opus sample rate")
	}
}
