// ABOUTME: Ogg page parsing and serialization
// ABOUTME: Fixed framing, lacing table and checksum handling

package taf

import (
	"encoding/binary"
	"fmt"
)

const (
	// PageSize is the exact on-disk size of every page in a TAF container.
	PageSize = 4096

	pageHeaderSize = 27
	maxSegments    = 255

	// usablePageBytes is the page budget shared by lacing entries and
	// payload bytes once the fixed header is accounted for.
	usablePageBytes = PageSize - pageHeaderSize
)

var capturePattern = [4]byte{'O', 'g', 'g', 'S'}

// Page header flag bits.
const (
	FlagContinued byte = 0x01
	FlagBOS       byte = 0x02
	FlagEOS       byte = 0x04
)

// Page is one framed unit of the container's page stream.
type Page struct {
	Version    byte
	Flags      byte
	GranulePos int64
	Serial     uint32
	Sequence   uint32
	// Checksum is the stored CRC from parsing. Serialize recomputes it.
	Checksum uint32
	// Lacing is the segment table. A run of 255 values followed by a
	// value below 255 delimits one packet; a table ending on 255 marks a
	// packet that continues on the next page.
	Lacing  []byte
	Payload []byte
}

// Size returns the serialized byte size of the page.
func (p *Page) Size() int {
	return pageHeaderSize + len(p.Lacing) + len(p.Payload)
}

// Continued reports whether the page starts mid-packet.
func (p *Page) Continued() bool { return p.Flags&FlagContinued != 0 }

// continuesOut reports whether the page's last packet spills onto the next
// page, signaled by a lacing table ending on 255.
func (p *Page) continuesOut() bool {
	return len(p.Lacing) > 0 && p.Lacing[len(p.Lacing)-1] == 255
}

// ParsePage reads one page from the front of buf and returns it together
// with the number of bytes consumed. The stored checksum is verified.
func ParsePage(buf []byte) (*Page, int, error) {
	return parsePage(buf, true)
}

func parsePage(buf []byte, verify bool) (*Page, int, error) {
	if len(buf) < pageHeaderSize {
		return nil, 0, fmt.Errorf("page header: %w", ErrTruncatedPage)
	}
	if [4]byte(buf[0:4]) != capturePattern {
		return nil, 0, ErrCapturePattern
	}

	p := &Page{
		Version:    buf[4],
		Flags:      buf[5],
		GranulePos: int64(binary.LittleEndian.Uint64(buf[6:14])),
		Serial:     binary.LittleEndian.Uint32(buf[14:18]),
		Sequence:   binary.LittleEndian.Uint32(buf[18:22]),
		Checksum:   binary.LittleEndian.Uint32(buf[22:26]),
	}

	nseg := int(buf[26])
	if len(buf) < pageHeaderSize+nseg {
		return nil, 0, fmt.Errorf("lacing table: %w", ErrTruncatedPage)
	}
	p.Lacing = append([]byte(nil), buf[pageHeaderSize:pageHeaderSize+nseg]...)

	payloadLen := 0
	for _, l := range p.Lacing {
		payloadLen += int(l)
	}
	total := pageHeaderSize + nseg + payloadLen
	if len(buf) < total {
		return nil, 0, fmt.Errorf("payload: %w", ErrTruncatedPage)
	}
	p.Payload = append([]byte(nil), buf[pageHeaderSize+nseg:total]...)

	if verify {
		crc := crcUpdate(0, buf[:22])
		crc = crcUpdate(crc, []byte{0, 0, 0, 0})
		crc = crcUpdate(crc, buf[26:total])
		if crc != p.Checksum {
			return nil, 0, fmt.Errorf("page %d: %w", p.Sequence, ErrChecksumMismatch)
		}
	}

	return p, total, nil
}

// Serialize encodes the page, recomputing the checksum. It fails with
// ErrLacingOverflow when the lacing table exceeds 255 entries; a packet that
// large must be split across pages first.
func (p *Page) Serialize() ([]byte, error) {
	if len(p.Lacing) > maxSegments {
		return nil, fmt.Errorf("%d lacing entries: %w", len(p.Lacing), ErrLacingOverflow)
	}

	buf := make([]byte, p.Size())
	copy(buf[0:4], capturePattern[:])
	buf[4] = p.Version
	buf[5] = p.Flags
	binary.LittleEndian.PutUint64(buf[6:14], uint64(p.GranulePos))
	binary.LittleEndian.PutUint32(buf[14:18], p.Serial)
	binary.LittleEndian.PutUint32(buf[18:22], p.Sequence)
	// buf[22:26] stays zero for the checksum pass.
	buf[26] = byte(len(p.Lacing))
	copy(buf[pageHeaderSize:], p.Lacing)
	copy(buf[pageHeaderSize+len(p.Lacing):], p.Payload)

	crc := crcUpdate(0, buf)
	binary.LittleEndian.PutUint32(buf[22:26], crc)
	return buf, nil
}

// ParsePages walks a complete page stream, verifying checksums.
func ParsePages(buf []byte) ([]*Page, error) {
	return parsePages(buf, true)
}

func parsePages(buf []byte, verify bool) ([]*Page, error) {
	var pages []*Page
	for len(buf) > 0 {
		p, n, err := parsePage(buf, verify)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", len(pages), err)
		}
		pages = append(pages, p)
		buf = buf[n:]
	}
	return pages, nil
}
