// ABOUTME: Tests for Opus setup packet handling and TOC arithmetic
// ABOUTME: Identification round-trip, unknown formats, sample counting

package taf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentificationRoundTrip(t *testing.T) {
	pkt := NewIdentificationPacket(2, 312)
	info, err := ParseIdentification(pkt)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Channels)
	assert.Equal(t, uint16(312), info.PreSkip)
	assert.Equal(t, uint32(SampleRate), info.SampleRate)
	assert.Equal(t, int16(0), info.OutputGain)
}

func TestParseIdentificationUnsupported(t *testing.T) {
	tests := []struct {
		name string
		pkt  []byte
	}{
		{"empty", nil},
		{"short", []byte("Opus")},
		{"wrong magic", append([]byte("VorbHead"), make([]byte, 11)...)},
		{"future version", func() []byte {
			p := NewIdentificationPacket(2, 0)
			p[8] = 2
			return p
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIdentification(tt.pkt)
			assert.ErrorIs(t, err, ErrUnsupportedStreamFormat)
		})
	}
}

func TestCommentRoundTrip(t *testing.T) {
	vendor, err := ParseComment(NewCommentPacket("tafforge"))
	require.NoError(t, err)
	assert.Equal(t, "tafforge", vendor)

	_, err = ParseComment([]byte("not a comment"))
	assert.ErrorIs(t, err, ErrUnsupportedStreamFormat)
}

func TestPacketSamples(t *testing.T) {
	tests := []struct {
		name string
		pkt  []byte
		want int64
	}{
		{"silk nb 10ms", []byte{0x00, 1}, 480},
		{"silk wb 60ms", []byte{0x58, 1}, 2880},
		{"hybrid 20ms", []byte{0x68, 1}, 960},
		{"celt 2.5ms", []byte{0x80, 1}, 120},
		{"celt 20ms", []byte{0xF8, 1}, 960},
		{"two frames", []byte{0xF9, 1, 1}, 1920},
		{"code3 four frames", []byte{0xFB, 0x04, 1}, 3840},
		{"identification", NewIdentificationPacket(2, 0), 0},
		{"comment", NewCommentPacket("v"), 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PacketSamples(tt.pkt))
		})
	}
}
