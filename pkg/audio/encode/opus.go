// ABOUTME: Opus audio encoder
// ABOUTME: Encodes int16 stereo samples into 20 ms Opus packets

package encode

import (
	"fmt"

	"gopkg.in/hraban/opus.v2"

	"github.com/tafforge/tafforge/pkg/taf"
)

const (
	// Channels is the channel count of every encoded stream.
	Channels = 2

	// FrameSize is the per-channel frame length of one packet: 20 ms at 48 kHz.
	FrameSize = taf.SampleRate / 50

	// PreSkip is the decoder priming length declared in the identification
	// header. 312 samples (6.5 ms) covers the codec lookahead.
	PreSkip = 312

	// DefaultBitrate is used when the caller does not pick one.
	DefaultBitrate = 96000

	maxPacketSize = 4000
)

// OpusEncoder encodes Opus audio.
type OpusEncoder struct {
	encoder *opus.Encoder
	bitrate int
}

// NewOpus creates a new Opus encoder at the given bitrate in bits per
// second. A non-positive bitrate selects DefaultBitrate.
func NewOpus(bitrate int) (*OpusEncoder, error) {
	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}

	encoder, err := opus.NewEncoder(taf.SampleRate, Channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}
	if err := encoder.SetBitrate(bitrate); err != nil {
		return nil, fmt.Errorf("failed to set opus bitrate: %w", err)
	}

	return &OpusEncoder{encoder: encoder, bitrate: bitrate}, nil
}

// Bitrate returns the configured bitrate.
func (e *OpusEncoder) Bitrate() int {
	return e.bitrate
}

// EncodeFrame converts exactly one 20 ms frame of interleaved stereo
// samples to a single Opus packet.
func (e *OpusEncoder) EncodeFrame(pcm []int16) ([]byte, error) {
	if len(pcm) != FrameSize*Channels {
		return nil, fmt.Errorf("opus frame needs %d samples, got %d", FrameSize*Channels, len(pcm))
	}

	data := make([]byte, maxPacketSize)
	n, err := e.encoder.Encode(pcm, data)
	if err != nil {
		return nil, fmt.Errorf("opus encode error: %w", err)
	}
	return data[:n], nil
}

// EncodeStream converts interleaved stereo samples into a sequence of
// Opus packets. PreSkip silent frames are prepended for decoder priming
// and the final frame is zero padded to a whole 20 ms.
func (e *OpusEncoder) EncodeStream(samples []int16) ([][]byte, error) {
	padded := make([]int16, 0, PreSkip*Channels+len(samples))
	padded = append(padded, make([]int16, PreSkip*Channels)...)
	padded = append(padded, samples...)

	frame := FrameSize * Channels
	if tail := len(padded) % frame; tail != 0 {
		padded = append(padded, make([]int16, frame-tail)...)
	}

	packets := make([][]byte, 0, len(padded)/frame)
	for off := 0; off < len(padded); off += frame {
		pkt, err := e.EncodeFrame(padded[off : off+frame])
		if err != nil {
			return nil, err
		}
		packets = append(packets, pkt)
	}
	return packets, nil
}

// Close releases encoder resources.
func (e *OpusEncoder) Close() error {
	return nil
}
