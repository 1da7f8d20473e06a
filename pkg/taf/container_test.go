// ABOUTME: End-to-end container build/parse/validate/diff tests
// ABOUTME: Covers the round-trip, hash, chapter and comparison properties

package taf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oggTrack builds a standalone Ogg Opus stream with its own setup packets.
func oggTrack(t *testing.T, serial uint32, sizes ...int) ([]byte, [][]byte) {
	t.Helper()
	packets := [][]byte{
		NewIdentificationPacket(2, 312),
		NewCommentPacket("tafforge"),
	}
	for i, s := range sizes {
		packets = append(packets, audioPacket(s, byte(i+int(serial))))
	}
	stream, err := EncodeOggStream(packets, serial)
	require.NoError(t, err)
	return stream, packets
}

func TestBuildRoundTrip(t *testing.T) {
	track0, pkts0 := oggTrack(t, 1, 300, 1200, 90, 4500)
	track1, pkts1 := oggTrack(t, 2, 700, 700)

	const ts = uint32(1700000000)
	data, err := Build([][]byte{track0, track1}, ts)
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, ts, c.Header.Timestamp)

	// The reassembled stream is track 0 in full plus track 1's audio.
	want := append(append([][]byte{}, pkts0...), pkts1[2:]...)
	got, err := c.AudioPackets()
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i], "packet %d", i)
	}

	// Chapter markers point at track 1's first audio packet.
	require.Len(t, c.Header.ChapterPages, 1)
	trk, err := c.TrackPackets(1)
	require.NoError(t, err)
	require.Len(t, trk, 2)
	assert.Equal(t, pkts1[2], trk[0])
}

func TestBuildPageSizeInvariant(t *testing.T) {
	track, _ := oggTrack(t, 3, 100, 6000, 333, 90, 2048)
	data, err := Build([][]byte{track}, 1)
	require.NoError(t, err)

	require.Zero(t, (len(data)-HeaderBlockSize)%PageSize)
	c, err := Parse(data)
	require.NoError(t, err)
	for i, p := range c.Pages {
		assert.Equal(t, PageSize, p.Size(), "page %d", i)
	}
}

func TestBuildHashInvariant(t *testing.T) {
	track, _ := oggTrack(t, 4, 500, 500, 500)
	data, err := Build([][]byte{track}, 77)
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, c.Header.Hash, c.ContentHash())
	assert.NoError(t, c.VerifyHash())
	assert.Equal(t, uint32(len(data)-HeaderBlockSize), c.Header.DataLength)
}

func TestBuildEmptyInput(t *testing.T) {
	_, err := Build(nil, 1)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = BuildFromPackets(nil, nil, 1)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildChapterMonotonicity(t *testing.T) {
	var tracks [][]byte
	for i := 0; i < 5; i++ {
		track, _ := oggTrack(t, uint32(i), 800, 800, 800)
		tracks = append(tracks, track)
	}

	data, err := Build(tracks, 5)
	require.NoError(t, err)
	c, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, c.Header.ChapterPages, 4)
	prev := uint32(1)
	for _, ch := range c.Header.ChapterPages {
		assert.Greater(t, ch, prev)
		assert.Less(t, int(ch), len(c.Pages))
		prev = ch
	}
}

func TestTimestampFrom(t *testing.T) {
	track, _ := oggTrack(t, 1, 400)
	data, err := Build([][]byte{track}, 123456789)
	require.NoError(t, err)

	ts, err := TimestampFrom(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(123456789), ts)

	// Deterministic rebuild: same tracks, reference timestamp, same bytes.
	again, err := Build([][]byte{track}, ts)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestTrackDurations(t *testing.T) {
	// Every fabricated packet is a 20 ms CELT frame.
	track0, _ := oggTrack(t, 1, 300, 1200, 90, 4500)
	track1, _ := oggTrack(t, 2, 700, 700)
	data, err := Build([][]byte{track0, track1}, 7)
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)

	d0, err := c.TrackDuration(0)
	require.NoError(t, err)
	assert.Equal(t, 80*time.Millisecond, d0)

	d1, err := c.TrackDuration(1)
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, d1)

	total, err := c.Duration()
	require.NoError(t, err)
	assert.Equal(t, 120*time.Millisecond, total)

	_, err = c.TrackDuration(5)
	assert.Error(t, err)
}

func TestValidateCleanContainer(t *testing.T) {
	track0, _ := oggTrack(t, 1, 900, 5000, 120)
	track1, _ := oggTrack(t, 2, 640)
	data, err := Build([][]byte{track0, track1}, 99)
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)

	report := Validate(c)
	assert.True(t, report.OK(), report.String())

	// Idempotent: a second run yields the identical report.
	assert.Equal(t, report, Validate(c))
}

func TestValidateReportsEveryDefect(t *testing.T) {
	track, _ := oggTrack(t, 1, 900, 900)
	data, err := Build([][]byte{track}, 55)
	require.NoError(t, err)

	// Corrupt one payload byte of the last page: hash and checksum both
	// break, and the validator reports both without aborting.
	data[len(data)-100] ^= 0xFF
	c, err := Parse(data)
	require.NoError(t, err)

	report := Validate(c)
	assert.False(t, report.OK())

	failed := map[string]bool{}
	for _, chk := range report.Failed() {
		failed[chk.Name] = true
	}
	assert.True(t, failed["content-hash"], report.String())
	assert.True(t, failed["page-checksum"], report.String())
	assert.False(t, failed["page-size"], report.String())
	assert.False(t, failed["identification"], report.String())
}

func TestValidateBadTimestampSerial(t *testing.T) {
	track, _ := oggTrack(t, 1, 900)
	data, err := Build([][]byte{track}, 55)
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	c.Header.Timestamp++ // decouple header from page serials

	report := Validate(c)
	failed := map[string]bool{}
	for _, chk := range report.Failed() {
		failed[chk.Name] = true
	}
	assert.True(t, failed["page-sequence"], report.String())
}

func TestValidateBadHeaderPrefix(t *testing.T) {
	track, _ := oggTrack(t, 1, 900)
	data, err := Build([][]byte{track}, 55)
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	// Oversized length prefix in the raw stream, decoupled from the
	// already decoded header.
	c.Raw[0] = 0xFF

	report := Validate(c)
	failed := map[string]bool{}
	for _, chk := range report.Failed() {
		failed[chk.Name] = true
	}
	assert.True(t, failed["header-prefix"], report.String())
}

func TestDiffIdenticalContainers(t *testing.T) {
	track, _ := oggTrack(t, 1, 2000, 300)
	data, err := Build([][]byte{track}, 10)
	require.NoError(t, err)

	a, err := Parse(data)
	require.NoError(t, err)
	b, err := Parse(append([]byte(nil), data...))
	require.NoError(t, err)

	assert.True(t, Diff(a, b, false).Identical())
	assert.True(t, Diff(a, b, true).Identical())
}

func TestDiffTimestampOnly(t *testing.T) {
	track, _ := oggTrack(t, 1, 2000, 300)
	dataA, err := Build([][]byte{track}, 10)
	require.NoError(t, err)
	dataB, err := Build([][]byte{track}, 20)
	require.NoError(t, err)

	a, err := Parse(dataA)
	require.NoError(t, err)
	b, err := Parse(dataB)
	require.NoError(t, err)

	// The hash covers only page payloads, so it is timestamp-independent.
	assert.Equal(t, a.Header.Hash, b.Header.Hash)
	assert.Equal(t, a.Header.DataLength, b.Header.DataLength)

	report := Diff(a, b, false)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "header.timestamp", report.Entries[0].Field)

	for i := range a.Pages {
		assert.Equal(t, a.Pages[i].Payload, b.Pages[i].Payload, "page %d payload", i)
	}
}

func TestDiffDetailedFindsPageOffset(t *testing.T) {
	track, _ := oggTrack(t, 1, 2000, 300)
	dataA, err := Build([][]byte{track}, 10)
	require.NoError(t, err)

	dataB := append([]byte(nil), dataA...)
	dataB[HeaderBlockSize+PageSize+200] ^= 0x01 // payload byte of page 1

	a, err := Parse(dataA)
	require.NoError(t, err)
	b, err := Parse(dataB)
	require.NoError(t, err)

	shallow := Diff(a, b, false)
	assert.False(t, shallow.Identical()) // the hash differs

	detailed := Diff(a, b, true)
	var pageEntry *DiffEntry
	for i := range detailed.Entries {
		if detailed.Entries[i].Field == "page[1]" {
			pageEntry = &detailed.Entries[i]
		}
	}
	require.NotNil(t, pageEntry, detailed.String())
}

func TestParseRejectsShortInput(t *testing.T) {
	_, err := Parse(make([]byte, 100))
	assert.ErrorIs(t, err, ErrTruncatedHeader)
}
