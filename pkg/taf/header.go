// ABOUTME: Fixed-size container header block codec
// ABOUTME: Hand-rolled length-delimited TLV with big-endian length prefix

package taf

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderBlockSize is the exact size of the header block that precedes
	// the page stream.
	HeaderBlockSize = 4096

	// headerPayloadSize is the value of the length prefix: the TLV region
	// always fills the block, with field 5 absorbing the slack.
	headerPayloadSize = HeaderBlockSize - 4

	// HashSize is the size of the SHA-1 content hash.
	HashSize = 20
)

// TLV field tags. Wire format: tag byte (field<<3 | type), type 0 varint,
// type 2 length-delimited.
const (
	tagHash       = 0x0A // field 1, bytes
	tagDataLength = 0x10 // field 2, varint
	tagTimestamp  = 0x18 // field 3, varint
	tagChapters   = 0x22 // field 4, packed varints
	tagPadding    = 0x2A // field 5, bytes
)

// Header is the decoded fixed-size metadata block.
type Header struct {
	// Hash is the SHA-1 over the concatenated page payload bytes.
	Hash [HashSize]byte
	// DataLength is the byte length of the page stream following the
	// header block.
	DataLength uint32
	// Timestamp is the build timestamp, reused as the bitstream serial
	// number of every page.
	Timestamp uint32
	// ChapterPages holds the page index of each track boundary after the
	// first track, strictly increasing.
	ChapterPages []uint32
}

// Encode produces the fixed 4096-byte header block: a 4-byte big-endian
// length prefix, the TLV fields, and a padding field sized so the block is
// exactly full. Fails with ErrHeaderOverflow when the fields alone exceed
// the block.
func (h *Header) Encode() ([]byte, error) {
	body := make([]byte, 0, headerPayloadSize)

	body = append(body, tagHash, HashSize)
	body = append(body, h.Hash[:]...)
	body = append(body, tagDataLength)
	body = appendUvarint(body, uint64(h.DataLength))
	body = append(body, tagTimestamp)
	body = appendUvarint(body, uint64(h.Timestamp))

	if len(h.ChapterPages) > 0 {
		var packed []byte
		for _, p := range h.ChapterPages {
			packed = appendUvarint(packed, uint64(p))
		}
		body = append(body, tagChapters)
		body = appendUvarint(body, uint64(len(packed)))
		body = append(body, packed...)
	}

	// Field 5 fills the remainder: tag byte, varint length, zero bytes.
	// gap is what the length varint plus the zeros must consume together.
	// Where the varint length boundary makes a gap unreachable, the slack
	// byte is left as block zero-fill past the prefix instead.
	gap := headerPayloadSize - len(body) - 1
	if gap < 1 {
		return nil, fmt.Errorf("%d chapters: %w", len(h.ChapterPages), ErrHeaderOverflow)
	}
	pad := -1
	for target := gap; target >= gap-1 && pad < 0; target-- {
		for p := target - 1; p >= 0; p-- {
			if uvarintLen(uint64(p))+p == target {
				pad = p
				break
			}
			if uvarintLen(uint64(p))+p < target {
				break
			}
		}
	}
	if pad < 0 {
		return nil, ErrHeaderOverflow
	}
	body = append(body, tagPadding)
	body = appendUvarint(body, uint64(pad))
	body = append(body, make([]byte, pad)...)

	block := make([]byte, HeaderBlockSize)
	binary.BigEndian.PutUint32(block[0:4], uint32(len(body)))
	copy(block[4:], body)
	return block, nil
}

// DecodeHeader parses a header block. The block may be exactly
// HeaderBlockSize or any buffer whose length prefix fits inside it.
func DecodeHeader(block []byte) (*Header, error) {
	if len(block) < 4 {
		return nil, fmt.Errorf("length prefix: %w", ErrTruncatedHeader)
	}
	n := binary.BigEndian.Uint32(block[0:4])
	if int64(n) > int64(len(block)-4) {
		return nil, fmt.Errorf("prefix %d exceeds %d bytes: %w", n, len(block)-4, ErrTruncatedHeader)
	}
	body := block[4 : 4+n]

	h := &Header{}
	sawHash := false
	for len(body) > 0 {
		tag := body[0]
		body = body[1:]
		switch tag {
		case tagHash:
			val, rest, err := readBytes(body)
			if err != nil {
				return nil, err
			}
			if len(val) != HashSize {
				return nil, fmt.Errorf("hash length %d: %w", len(val), ErrMalformedHeader)
			}
			copy(h.Hash[:], val)
			sawHash = true
			body = rest
		case tagDataLength:
			v, rest, err := readUvarint(body)
			if err != nil {
				return nil, err
			}
			h.DataLength = uint32(v)
			body = rest
		case tagTimestamp:
			v, rest, err := readUvarint(body)
			if err != nil {
				return nil, err
			}
			h.Timestamp = uint32(v)
			body = rest
		case tagChapters:
			packed, rest, err := readBytes(body)
			if err != nil {
				return nil, err
			}
			for len(packed) > 0 {
				v, r, err := readUvarint(packed)
				if err != nil {
					return nil, err
				}
				h.ChapterPages = append(h.ChapterPages, uint32(v))
				packed = r
			}
			body = rest
		case tagPadding:
			val, rest, err := readBytes(body)
			if err != nil {
				return nil, err
			}
			_ = val
			body = rest
		default:
			return nil, fmt.Errorf("tag 0x%02X: %w", tag, ErrMalformedHeader)
		}
	}
	if !sawHash {
		return nil, fmt.Errorf("missing hash field: %w", ErrMalformedHeader)
	}
	return h, nil
}

func appendUvarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func readUvarint(b []byte) (uint64, []byte, error) {
	var v uint64
	for i := 0; i < len(b); i++ {
		if i > 9 {
			break
		}
		v |= uint64(b[i]&0x7F) << (7 * i)
		if b[i] < 0x80 {
			return v, b[i+1:], nil
		}
	}
	return 0, nil, fmt.Errorf("varint: %w", ErrMalformedHeader)
}

func readBytes(b []byte) ([]byte, []byte, error) {
	n, rest, err := readUvarint(b)
	if err != nil {
		return nil, nil, err
	}
	if n > uint64(len(rest)) {
		return nil, nil, fmt.Errorf("field length %d: %w", n, ErrMalformedHeader)
	}
	return rest[:n], rest[n:], nil
}
