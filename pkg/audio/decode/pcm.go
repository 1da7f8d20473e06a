// ABOUTME: Raw PCM decoder
// ABOUTME: Reads headerless s16le data assuming 48 kHz stereo

package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/tafforge/tafforge/pkg/audio"
)

// PCM decodes a headerless little-endian 16-bit file. Raw data carries
// no format information, so 48 kHz stereo is assumed.
func PCM(f *os.File) (*audio.Clip, error) {
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("pcm read error: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("pcm data has odd length %d", len(raw))
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return &audio.Clip{
		Format: audio.Format{
			SampleRate: 48000,
			Channels:   2,
			BitDepth:   16,
		},
		Samples: samples,
	}, nil
}
