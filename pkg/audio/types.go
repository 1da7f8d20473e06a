// ABOUTME: Audio type definitions
// ABOUTME: Defines PCM formats, decoded clips and channel helpers

package audio

import "time"

// Format describes a PCM stream.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Clip is a fully decoded piece of audio: interleaved int16 samples.
type Clip struct {
	Format  Format
	Samples []int16
}

// Frames returns the number of per-channel sample frames.
func (c *Clip) Frames() int {
	if c.Format.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Format.Channels
}

// Duration returns the playing time of the clip.
func (c *Clip) Duration() time.Duration {
	if c.Format.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.Format.SampleRate)
}

// ToStereo returns the clip's samples in two-channel interleaved layout.
// Mono is duplicated into both channels; layouts with more than two
// channels are folded down by keeping the first two.
func (c *Clip) ToStereo() []int16 {
	switch c.Format.Channels {
	case 2:
		return c.Samples
	case 1:
		out := make([]int16, len(c.Samples)*2)
		for i, s := range c.Samples {
			out[i*2] = s
			out[i*2+1] = s
		}
		return out
	default:
		frames := c.Frames()
		out := make([]int16, frames*2)
		for i := 0; i < frames; i++ {
			out[i*2] = c.Samples[i*c.Format.Channels]
			out[i*2+1] = c.Samples[i*c.Format.Channels+1]
		}
		return out
	}
}

// Sample24To16 narrows a 24-bit sample value to int16.
func Sample24To16(v int32) int16 {
	return int16(v >> 8)
}

// Clamp16 clamps a wide intermediate value into int16 range.
func Clamp16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
