// ABOUTME: Opus identification/comment packet codec and TOC arithmetic
// ABOUTME: Closed set of known stream formats, granule sample counting

package taf

import (
	"encoding/binary"
	"fmt"
)

// SampleRate is the only sample rate the target decoder accepts.
const SampleRate = 48000

var (
	opusHeadMagic = []byte("OpusHead")
	opusTagsMagic = []byte("OpusTags")
)

// StreamInfo carries the fields of a decoded identification packet.
type StreamInfo struct {
	Channels   int
	PreSkip    uint16
	SampleRate uint32
	OutputGain int16
}

// ParseIdentification decodes an identification packet. Only OpusHead
// version 1 is a known format; anything else fails with
// ErrUnsupportedStreamFormat.
func ParseIdentification(pkt []byte) (*StreamInfo, error) {
	if len(pkt) < 19 || string(pkt[0:8]) != string(opusHeadMagic) {
		return nil, fmt.Errorf("identification packet: %w", ErrUnsupportedStreamFormat)
	}
	if pkt[8] != 1 {
		return nil, fmt.Errorf("identification version %d: %w", pkt[8], ErrUnsupportedStreamFormat)
	}
	return &StreamInfo{
		Channels:   int(pkt[9]),
		PreSkip:    binary.LittleEndian.Uint16(pkt[10:12]),
		SampleRate: binary.LittleEndian.Uint32(pkt[12:16]),
		OutputGain: int16(binary.LittleEndian.Uint16(pkt[16:18])),
	}, nil
}

// ParseComment checks a comment packet and returns its vendor string.
func ParseComment(pkt []byte) (string, error) {
	if len(pkt) < 12 || string(pkt[0:8]) != string(opusTagsMagic) {
		return "", fmt.Errorf("comment packet: %w", ErrUnsupportedStreamFormat)
	}
	n := binary.LittleEndian.Uint32(pkt[8:12])
	if uint64(n) > uint64(len(pkt)-12) {
		return "", fmt.Errorf("comment vendor length %d: %w", n, ErrUnsupportedStreamFormat)
	}
	return string(pkt[12 : 12+n]), nil
}

// NewIdentificationPacket builds an OpusHead packet for a mapping-family-0
// stream at the container sample rate.
func NewIdentificationPacket(channels int, preSkip uint16) []byte {
	pkt := make([]byte, 19)
	copy(pkt, opusHeadMagic)
	pkt[8] = 1
	pkt[9] = byte(channels)
	binary.LittleEndian.PutUint16(pkt[10:12], preSkip)
	binary.LittleEndian.PutUint32(pkt[12:16], SampleRate)
	// Output gain 0, mapping family 0.
	return pkt
}

// NewCommentPacket builds an OpusTags packet with no user comments.
func NewCommentPacket(vendor string) []byte {
	pkt := make([]byte, 0, 16+len(vendor))
	pkt = append(pkt, opusTagsMagic...)
	pkt = binary.LittleEndian.AppendUint32(pkt, uint32(len(vendor)))
	pkt = append(pkt, vendor...)
	pkt = binary.LittleEndian.AppendUint32(pkt, 0)
	return pkt
}

// PacketSamples returns the duration of an Opus packet in 48 kHz samples,
// derived from the TOC byte. Identification, comment and padding packets
// return 0.
func PacketSamples(pkt []byte) int64 {
	if len(pkt) == 0 || isPadding(pkt) {
		return 0
	}
	if len(pkt) >= 8 &&
		(string(pkt[0:8]) == string(opusHeadMagic) || string(pkt[0:8]) == string(opusTagsMagic)) {
		return 0
	}

	toc := pkt[0]
	config := toc >> 3

	var perFrame int64
	switch {
	case config < 12: // SILK NB/MB/WB: 10, 20, 40, 60 ms
		perFrame = []int64{480, 960, 1920, 2880}[config%4]
	case config < 16: // Hybrid: 10, 20 ms
		perFrame = []int64{480, 960}[config%2]
	default: // CELT: 2.5, 5, 10, 20 ms
		perFrame = []int64{120, 240, 480, 960}[(config-16)%4]
	}

	var frames int64
	switch toc & 0x03 {
	case 0:
		frames = 1
	case 1, 2:
		frames = 2
	case 3:
		if len(pkt) < 2 {
			return 0
		}
		frames = int64(pkt[1] & 0x3F)
	}

	return perFrame * frames
}
