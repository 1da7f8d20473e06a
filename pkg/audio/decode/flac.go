// ABOUTME: FLAC decoder
// ABOUTME: Decodes FLAC frames to interleaved 16-bit PCM

package decode

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"

	"github.com/tafforge/tafforge/pkg/audio"
)

// FLAC decodes a FLAC file. Samples wider than 16 bits are narrowed,
// narrower ones widened, so the clip is always 16-bit.
func FLAC(f *os.File) (*audio.Clip, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open flac stream: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	shift := int(info.BitsPerSample) - 16

	var samples []int16
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac decode error: %w", err)
		}

		channels := len(frame.Subframes)
		if channels == 0 {
			continue
		}
		frames := len(frame.Subframes[0].Samples)
		for i := 0; i < frames; i++ {
			for ch := 0; ch < channels; ch++ {
				s := frame.Subframes[ch].Samples[i]
				if shift > 0 {
					s >>= shift
				} else if shift < 0 {
					s <<= -shift
				}
				samples = append(samples, int16(s))
			}
		}
	}

	return &audio.Clip{
		Format: audio.Format{
			SampleRate: int(info.SampleRate),
			Channels:   int(info.NChannels),
			BitDepth:   16,
		},
		Samples: samples,
	}, nil
}
