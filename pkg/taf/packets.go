// ABOUTME: Packet reassembly across page boundaries
// ABOUTME: Finite iterator that undoes page-level packet splitting

package taf

import (
	"fmt"
	"io"
)

// PacketReader reassembles logical packets from an ordered run of pages
// sharing one bitstream serial number. It is a finite, single-use iterator;
// construct a new reader to restart.
//
// With skipPadding set the reader drops zero-length packets and packets
// whose payload is entirely zero bytes. TAF page padding is written in that
// form, so readers of container streams should set it; readers of raw
// encoder output should not.
type PacketReader struct {
	pages       []*Page
	skipPadding bool

	pageIdx int
	segIdx  int
	offset  int // payload offset within the current page

	pending []byte
	midPkt  bool // pending fragment carried over from the previous page
	inRun   bool // consumed a lacing entry on the current page
	started bool
}

// NewPacketReader returns a reader over pages.
func NewPacketReader(pages []*Page, skipPadding bool) *PacketReader {
	return &PacketReader{pages: pages, skipPadding: skipPadding}
}

// Next returns the next complete packet, or io.EOF when the page run is
// exhausted. A packet left unterminated by the final page is discarded.
func (r *PacketReader) Next() ([]byte, error) {
	for {
		pkt, err := r.next()
		if err != nil {
			return nil, err
		}
		if r.skipPadding && isPadding(pkt) {
			continue
		}
		return pkt, nil
	}
}

func (r *PacketReader) next() ([]byte, error) {
	for r.pageIdx < len(r.pages) {
		page := r.pages[r.pageIdx]

		if r.segIdx == 0 && r.offset == 0 {
			if err := r.checkContinuity(page); err != nil {
				return nil, err
			}
		}

		for r.segIdx < len(page.Lacing) {
			l := int(page.Lacing[r.segIdx])
			if l == 0 && r.midPkt && !r.inRun {
				// Padding written ahead of a continuation run. The
				// pending fragment always resumes with a non-zero entry,
				// so head zeros on a continued page never terminate it.
				r.segIdx++
				continue
			}
			r.inRun = true
			r.pending = append(r.pending, page.Payload[r.offset:r.offset+l]...)
			r.offset += l
			r.segIdx++
			if l < 255 {
				pkt := r.pending
				r.pending = nil
				r.midPkt = false
				if pkt == nil {
					pkt = []byte{}
				}
				return pkt, nil
			}
		}

		r.midPkt = page.continuesOut() && len(r.pending) > 0
		r.pageIdx++
		r.segIdx = 0
		r.offset = 0
		r.inRun = false
	}

	return nil, io.EOF
}

// checkContinuity enforces the single-stream invariants when the reader
// steps onto a new page.
func (r *PacketReader) checkContinuity(page *Page) error {
	if !r.started {
		r.started = true
		// A first page that opens mid-packet belongs to a packet whose
		// start was not handed to this reader; skip the leading fragment.
		if page.Continued() {
			r.skipLeadingFragment(page)
		}
		return nil
	}

	prev := r.pages[r.pageIdx-1]
	if page.Serial != prev.Serial {
		return fmt.Errorf("page %d: serial %d after %d: %w",
			page.Sequence, page.Serial, prev.Serial, ErrSerialDiscontinuity)
	}
	if page.Sequence != prev.Sequence+1 {
		return fmt.Errorf("page %d follows %d: %w",
			page.Sequence, prev.Sequence, ErrSequenceGap)
	}
	if !page.Continued() && r.midPkt {
		// The split packet was never finished; drop the fragment.
		r.pending = nil
		r.midPkt = false
	}
	if page.Continued() && !r.midPkt {
		r.skipLeadingFragment(page)
	}
	return nil
}

// skipLeadingFragment advances past an orphaned continuation fragment at
// the start of a page, including any padding entries written ahead of it.
func (r *PacketReader) skipLeadingFragment(page *Page) {
	for r.segIdx < len(page.Lacing) && page.Lacing[r.segIdx] == 0 {
		r.segIdx++
	}
	for r.segIdx < len(page.Lacing) {
		l := int(page.Lacing[r.segIdx])
		r.offset += l
		r.segIdx++
		if l < 255 {
			return
		}
	}
}

// ReadAll drains the reader.
func (r *PacketReader) ReadAll() ([][]byte, error) {
	var packets [][]byte
	for {
		pkt, err := r.Next()
		if err == io.EOF {
			return packets, nil
		}
		if err != nil {
			return nil, err
		}
		packets = append(packets, pkt)
	}
}

// isPadding reports whether a packet is page padding: empty, or filled
// entirely with zero bytes.
func isPadding(pkt []byte) bool {
	for _, b := range pkt {
		if b != 0 {
			return false
		}
	}
	return true
}
