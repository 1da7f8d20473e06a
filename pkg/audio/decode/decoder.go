// ABOUTME: Decoder selection by file extension
// ABOUTME: Maps source formats to their decode functions

package decode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tafforge/tafforge/pkg/audio"
)

// Decoder reads one complete audio file into a clip.
type Decoder func(f *os.File) (*audio.Clip, error)

// ForPath returns the decoder for a file path based on its extension.
func ForPath(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return MP3, nil
	case ".flac":
		return FLAC, nil
	case ".wav", ".wave":
		return WAV, nil
	case ".pcm", ".raw":
		return PCM, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
}

// Supported reports whether a file extension has a decoder.
func Supported(path string) bool {
	_, err := ForPath(path)
	return err == nil
}

// File decodes a complete audio file selected by its extension.
func File(path string) (*audio.Clip, error) {
	dec, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return dec(f)
}
