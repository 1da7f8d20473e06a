// ABOUTME: WAV decoder
// ABOUTME: Decodes RIFF/WAVE files to interleaved 16-bit PCM

package decode

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/tafforge/tafforge/pkg/audio"
)

// WAV decodes a RIFF/WAVE file. 8, 16, 24 and 32 bit integer PCM are
// accepted and narrowed or widened to 16-bit samples.
func WAV(f *os.File) (*audio.Clip, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file: %s", f.Name())
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode error: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	shift := bitDepth - 16

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		if bitDepth == 8 {
			// 8-bit WAV is unsigned.
			s -= 128
		}
		if shift > 0 {
			s >>= shift
		} else if shift < 0 {
			s <<= -shift
		}
		samples[i] = audio.Clamp16(s)
	}

	return &audio.Clip{
		Format: audio.Format{
			SampleRate: int(dec.SampleRate),
			Channels:   int(dec.NumChans),
			BitDepth:   16,
		},
		Samples: samples,
	}, nil
}
