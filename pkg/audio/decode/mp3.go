// ABOUTME: MP3 decoder
// ABOUTME: Decodes a whole MP3 file to 16-bit stereo PCM

package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/tafforge/tafforge/pkg/audio"
)

// MP3 decodes an MP3 file. The decoder always emits 16-bit stereo at
// the source sample rate.
func MP3(f *os.File) (*audio.Clip, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open mp3 stream: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return &audio.Clip{
		Format: audio.Format{
			SampleRate: dec.SampleRate(),
			Channels:   2,
			BitDepth:   16,
		},
		Samples: samples,
	}, nil
}
