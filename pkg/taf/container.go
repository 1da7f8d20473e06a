// ABOUTME: Container build and parse orchestration
// ABOUTME: Header plus page stream assembly, timestamp sources, track access

package taf

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"time"
)

// Container is a parsed TAF artifact: the header block and its page stream.
// It is a read-only view; nothing mutates a container in place.
type Container struct {
	Header *Header
	Pages  []*Page
	// Raw is the original byte stream the container was parsed from, or
	// the emitted stream for a freshly built container.
	Raw []byte
}

// TimestampNow returns the current time as a build timestamp.
func TimestampNow() uint32 {
	return uint32(time.Now().Unix())
}

// TimestampFrom extracts the timestamp of a reference container, enabling
// byte-deterministic rebuilds.
func TimestampFrom(ref []byte) (uint32, error) {
	if len(ref) < HeaderBlockSize {
		return 0, fmt.Errorf("reference container: %w", ErrTruncatedHeader)
	}
	h, err := DecodeHeader(ref[:HeaderBlockSize])
	if err != nil {
		return 0, err
	}
	return h.Timestamp, nil
}

// Build assembles a container from ordered per-track Ogg streams. Each
// track is an independent Ogg Opus stream; the identification and comment
// packets of every track after the first are stripped so all tracks merge
// into one logical bitstream. The timestamp doubles as the bitstream serial
// number.
func Build(tracks [][]byte, timestamp uint32) ([]byte, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyInput
	}

	var packets [][]byte
	var boundaries []int
	for i, track := range tracks {
		pages, err := ParsePages(track)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		pkts, err := NewPacketReader(pages, false).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		if i > 0 {
			if len(pkts) < 3 {
				return nil, fmt.Errorf("track %d has no audio packets: %w", i, ErrEmptyInput)
			}
			boundaries = append(boundaries, len(packets))
			pkts = pkts[2:] // drop the redundant identification and comment packets
		}
		packets = append(packets, pkts...)
	}

	return BuildFromPackets(packets, boundaries, timestamp)
}

// BuildFromPackets assembles a container from a flat packet sequence that
// already starts with the identification and comment packets. boundaries
// lists the packet index where each track after the first begins.
func BuildFromPackets(packets [][]byte, boundaries []int, timestamp uint32) ([]byte, error) {
	if len(packets) == 0 {
		return nil, ErrEmptyInput
	}

	pages, chapters, err := LayoutPages(packets, boundaries, timestamp)
	if err != nil {
		return nil, err
	}

	hash := sha1.New()
	var stream bytes.Buffer
	for _, p := range pages {
		buf, err := p.Serialize()
		if err != nil {
			return nil, err
		}
		stream.Write(buf)
		hash.Write(p.Payload)
	}

	header := &Header{
		DataLength:   uint32(stream.Len()),
		Timestamp:    timestamp,
		ChapterPages: chapters,
	}
	copy(header.Hash[:], hash.Sum(nil))

	block, err := header.Encode()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(block)+stream.Len())
	out = append(out, block...)
	out = append(out, stream.Bytes()...)
	return out, nil
}

// Parse splits raw container bytes into the header block and the page
// stream. Page checksums are not verified here; the Validator reports on
// them so that a single run can surface every defect.
func Parse(data []byte) (*Container, error) {
	if len(data) < HeaderBlockSize {
		return nil, fmt.Errorf("container of %d bytes: %w", len(data), ErrTruncatedHeader)
	}
	header, err := DecodeHeader(data[:HeaderBlockSize])
	if err != nil {
		return nil, err
	}
	pages, err := parsePages(data[HeaderBlockSize:], false)
	if err != nil {
		return nil, err
	}
	return &Container{Header: header, Pages: pages, Raw: data}, nil
}

// Tracks returns the number of tracks recorded in the container.
func (c *Container) Tracks() int {
	return len(c.Header.ChapterPages) + 1
}

// trackPageRange returns the page index range [start, end) of a track's
// audio pages. Audio begins on page 2; pages 0 and 1 carry the
// identification and comment packets.
func (c *Container) trackPageRange(track int) (int, int, error) {
	if track < 0 || track >= c.Tracks() {
		return 0, 0, fmt.Errorf("track %d of %d: %w", track, c.Tracks(), ErrInvalidBoundary)
	}
	start := 2
	if track > 0 {
		start = int(c.Header.ChapterPages[track-1])
	}
	end := len(c.Pages)
	if track < len(c.Header.ChapterPages) {
		end = int(c.Header.ChapterPages[track])
	}
	if start > end || end > len(c.Pages) {
		return 0, 0, fmt.Errorf("track %d pages [%d, %d): %w", track, start, end, ErrInvalidBoundary)
	}
	return start, end, nil
}

// TrackPackets reassembles the audio packets of one track, recovered from
// the chapter markers. Padding packets are dropped.
func (c *Container) TrackPackets(track int) ([][]byte, error) {
	start, end, err := c.trackPageRange(track)
	if err != nil {
		return nil, err
	}
	return NewPacketReader(c.Pages[start:end], true).ReadAll()
}

// AudioPackets reassembles the complete logical packet stream, including
// the identification and comment packets.
func (c *Container) AudioPackets() ([][]byte, error) {
	return NewPacketReader(c.Pages, true).ReadAll()
}

// TrackDuration returns the playing time of one track.
func (c *Container) TrackDuration(track int) (time.Duration, error) {
	pkts, err := c.TrackPackets(track)
	if err != nil {
		return 0, err
	}
	var samples int64
	for _, pkt := range pkts {
		samples += PacketSamples(pkt)
	}
	return time.Duration(samples) * time.Second / time.Duration(SampleRate), nil
}

// Duration returns the total playing time of the container.
func (c *Container) Duration() (time.Duration, error) {
	var total time.Duration
	for i := 0; i < c.Tracks(); i++ {
		d, err := c.TrackDuration(i)
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}

// ContentHash computes the SHA-1 over the concatenated page payloads.
func (c *Container) ContentHash() [HashSize]byte {
	hash := sha1.New()
	for _, p := range c.Pages {
		hash.Write(p.Payload)
	}
	var sum [HashSize]byte
	copy(sum[:], hash.Sum(nil))
	return sum
}

// VerifyHash checks the stored content hash against the page payloads.
func (c *Container) VerifyHash() error {
	if c.ContentHash() != c.Header.Hash {
		return ErrHashMismatch
	}
	return nil
}

// StreamInfo decodes the identification packet of the container.
func (c *Container) StreamInfo() (*StreamInfo, error) {
	pkts, err := c.AudioPackets()
	if err != nil {
		return nil, err
	}
	if len(pkts) == 0 {
		return nil, fmt.Errorf("no packets: %w", ErrUnsupportedStreamFormat)
	}
	return ParseIdentification(pkts[0])
}
