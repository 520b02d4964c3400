// ABOUTME: File loader dispatch by extension
// ABOUTME: Routes recordings to the WAV, MP3 or FLAC loader
package decode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
)

// LoadFile reads an audio recording into a mono clip, choosing the decoder by
// file extension
func LoadFile(path string) (*audio.Clip, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return LoadWAV(path)
	case ".mp3":
		return LoadMP3(path)
	case ".flac":
		return LoadFLAC(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .flac)", ext)
	}
}
