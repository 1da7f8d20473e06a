// ABOUTME: Repacketizer laying logical packets into exact-size pages
// ABOUTME: Splits packets in 255-byte quanta and pads every page to 4096

package taf

import "fmt"

// dataSegBudget caps the lacing entries spent on packet data so that page
// padding always fits the 255-entry table. A stuffing packet needs at most
// 16 entries plus one zero terminator.
const dataSegBudget = maxSegments - 17

// pageWriter accumulates packets into pages of exactly PageSize bytes.
type pageWriter struct {
	serial uint32
	pages  []*Page

	lacing  []byte
	payload []byte

	samples         int64 // cumulative 48 kHz samples of completed packets
	completedOnPage bool
	nextContinued   bool
}

// LayoutPages lays an ordered packet sequence into pages. boundaries lists
// the packet index at which each track after the first begins; the returned
// chapter list holds the page index where each such track starts. The first
// two packets (identification and comment) each get their own page; audio
// begins on page 2.
func LayoutPages(packets [][]byte, boundaries []int, serial uint32) ([]*Page, []uint32, error) {
	if len(packets) == 0 {
		return nil, nil, ErrEmptyInput
	}
	prev := 1 // boundaries point past the identification and comment packets
	for _, b := range boundaries {
		if b <= prev || b >= len(packets) {
			return nil, nil, fmt.Errorf("track boundary %d: %w", b, ErrInvalidBoundary)
		}
		prev = b
	}

	w := &pageWriter{serial: serial}
	next := 0
	chapters := make([]uint32, 0, len(boundaries))

	for i, pkt := range packets {
		if isPadding(pkt) {
			return nil, nil, fmt.Errorf("packet %d: %w", i, ErrZeroPacket)
		}
		if next < len(boundaries) && i == boundaries[next] {
			w.breakPage()
			chapters = append(chapters, uint32(len(w.pages)))
			next++
		}
		if err := w.append(pkt); err != nil {
			return nil, nil, err
		}
		if i == 0 || i == 1 {
			// Identification and comment packets close their pages.
			w.breakPage()
		}
	}
	w.breakPage()

	if len(w.pages) > 0 {
		w.pages[len(w.pages)-1].Flags |= FlagEOS
	}
	return w.pages, chapters, nil
}

func (w *pageWriter) free() int {
	return usablePageBytes - len(w.lacing) - len(w.payload)
}

// append adds one packet, splitting it across pages as needed.
func (w *pageWriter) append(pkt []byte) error {
	rem := pkt
	for {
		free := w.free()
		n := len(rem)/255 + 1

		if len(w.lacing)+n <= dataSegBudget && n+len(rem) <= free {
			for l := len(rem); ; l -= 255 {
				if l >= 255 {
					w.lacing = append(w.lacing, 255)
				} else {
					w.lacing = append(w.lacing, byte(l))
					break
				}
			}
			w.payload = append(w.payload, rem...)
			w.samples += PacketSamples(pkt)
			w.completedOnPage = true
			return nil
		}

		// Split: write as many 255-byte quanta as the page affords, with
		// the residual space consumed by zero-length entries placed ahead
		// of the fragment so the unterminated 255 run stays last.
		m := free / 256
		if max := dataSegBudget - len(w.lacing); m > max {
			m = max
		}
		if m*255 >= len(rem) {
			m = (len(rem) - 1) / 255
		}
		f := free - 256*m
		if m <= 0 || len(w.lacing)+f+m > maxSegments {
			w.finalize(false)
			continue
		}
		for i := 0; i < f; i++ {
			w.lacing = append(w.lacing, 0)
		}
		for i := 0; i < m; i++ {
			w.lacing = append(w.lacing, 255)
		}
		w.payload = append(w.payload, rem[:m*255]...)
		rem = rem[m*255:]
		w.finalize(true)
	}
}

// breakPage finalizes the current page if it holds anything.
func (w *pageWriter) breakPage() {
	if len(w.lacing) > 0 {
		w.finalize(false)
	}
}

// finalize pads the current page to exactly PageSize (unless a split
// already filled it), emits it, and resets the buffers. split marks that
// the page's last packet continues onto the next page.
func (w *pageWriter) finalize(split bool) {
	if !split {
		w.pad()
	}

	granule := w.samples
	if !w.completedOnPage {
		granule = -1
	}
	flags := byte(0)
	if len(w.pages) == 0 {
		flags |= FlagBOS
	}
	if w.nextContinued {
		flags |= FlagContinued
	}
	w.pages = append(w.pages, &Page{
		Flags:      flags,
		GranulePos: granule,
		Serial:     w.serial,
		Sequence:   uint32(len(w.pages)),
		Lacing:     w.lacing,
		Payload:    w.payload,
	})

	w.lacing = nil
	w.payload = nil
	w.completedOnPage = false
	w.nextContinued = split
}

// pad fills the page's free space exactly, preferring zero-length lacing
// entries and falling back to zero-filled stuffing packets for spans a bare
// entry cannot cover.
func (w *pageWriter) pad() {
	for {
		free := w.free()
		if free == 0 {
			return
		}
		if free == 1 {
			w.lacing = append(w.lacing, 0)
			continue
		}
		if l, ok := stuffingSize(free); ok {
			for r := l; ; r -= 255 {
				if r >= 255 {
					w.lacing = append(w.lacing, 255)
				} else {
					w.lacing = append(w.lacing, byte(r))
					break
				}
			}
			w.payload = append(w.payload, make([]byte, l)...)
			continue
		}
		w.lacing = append(w.lacing, 0)
	}
}

// stuffingSize finds a payload length whose lacing entries plus bytes
// consume exactly free bytes. Some spans (such as 256) have no solution;
// the caller then burns one byte on a zero entry and retries.
func stuffingSize(free int) (int, bool) {
	l := free - free/256 - 1
	for d := -2; d <= 2; d++ {
		c := l + d
		if c >= 1 && c+c/255+1 == free {
			return c, true
		}
	}
	return 0, false
}
