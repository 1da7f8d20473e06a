// ABOUTME: Structural validation of parsed containers
// ABOUTME: Ordered pass/fail checks that never abort early

package taf

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Check is one named validation result.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Report is the ordered outcome of a validation run. Two runs over the
// same container produce identical reports.
type Report struct {
	Checks []Check
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Failed returns the failing checks.
func (r *Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

func (r *Report) String() string {
	var b strings.Builder
	for _, c := range r.Checks {
		status := "ok"
		if !c.OK {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%-16s %-4s %s\n", c.Name, status, c.Detail)
	}
	return b.String()
}

func (r *Report) add(name string, ok bool, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, OK: ok, Detail: detail})
}

// Validate runs every structural check against a parsed container and
// reports each one. It never returns an error: a single run surfaces every
// defect, and the caller decides which failures are fatal.
func Validate(c *Container) *Report {
	r := &Report{}

	r.checkHeaderPrefix(c)

	wantLen := 0
	for _, p := range c.Pages {
		wantLen += p.Size()
	}
	r.add("content-length", int(c.Header.DataLength) == wantLen,
		fmt.Sprintf("header %d bytes, page stream %d bytes", c.Header.DataLength, wantLen))

	sum := c.ContentHash()
	r.add("content-hash", sum == c.Header.Hash,
		fmt.Sprintf("header %s, computed %s",
			hex.EncodeToString(c.Header.Hash[:]), hex.EncodeToString(sum[:])))

	badSize := -1
	for i, p := range c.Pages {
		if p.Size() != PageSize {
			badSize = i
			break
		}
	}
	if badSize < 0 {
		r.add("page-size", true, fmt.Sprintf("%d pages of %d bytes", len(c.Pages), PageSize))
	} else {
		r.add("page-size", false,
			fmt.Sprintf("page %d is %d bytes, want %d", badSize, c.Pages[badSize].Size(), PageSize))
	}

	r.checkChecksums(c)
	r.checkSequence(c)
	r.checkStreamPackets(c)
	r.checkChapters(c)

	return r
}

func (r *Report) checkHeaderPrefix(c *Container) {
	if len(c.Raw) < HeaderBlockSize {
		r.add("header-prefix", false,
			fmt.Sprintf("raw stream %d bytes, header block needs %d", len(c.Raw), HeaderBlockSize))
		return
	}
	n := binary.BigEndian.Uint32(c.Raw[0:4])
	if int(n) > HeaderBlockSize-4 {
		r.add("header-prefix", false,
			fmt.Sprintf("length prefix %d exceeds %d", n, HeaderBlockSize-4))
		return
	}
	r.add("header-prefix", true, fmt.Sprintf("length prefix %d of %d", n, HeaderBlockSize-4))
}

func (r *Report) checkChecksums(c *Container) {
	for i, p := range c.Pages {
		buf, err := p.Serialize()
		if err != nil {
			r.add("page-checksum", false, fmt.Sprintf("page %d: %v", i, err))
			return
		}
		crc := binary.LittleEndian.Uint32(buf[22:26])
		if crc != p.Checksum {
			r.add("page-checksum", false,
				fmt.Sprintf("page %d stored %08X, computed %08X", i, p.Checksum, crc))
			return
		}
	}
	r.add("page-checksum", true, fmt.Sprintf("%d pages verified", len(c.Pages)))
}

func (r *Report) checkSequence(c *Container) {
	for i, p := range c.Pages {
		if p.Sequence != uint32(i) {
			r.add("page-sequence", false,
				fmt.Sprintf("page %d has sequence %d", i, p.Sequence))
			return
		}
		if p.Serial != c.Header.Timestamp {
			r.add("page-sequence", false,
				fmt.Sprintf("page %d serial %d, header timestamp %d", i, p.Serial, c.Header.Timestamp))
			return
		}
	}
	r.add("page-sequence", true,
		fmt.Sprintf("consecutive from 0, serial %d", c.Header.Timestamp))
}

func (r *Report) checkStreamPackets(c *Container) {
	pkts, err := c.AudioPackets()
	if err != nil || len(pkts) < 2 {
		r.add("identification", false, fmt.Sprintf("packet reassembly: %v (%d packets)", err, len(pkts)))
		r.add("comment", false, "not reached")
		return
	}

	info, err := ParseIdentification(pkts[0])
	switch {
	case err != nil:
		r.add("identification", false, err.Error())
	case info.SampleRate != SampleRate:
		r.add("identification", false,
			fmt.Sprintf("sample rate %d, want %d", info.SampleRate, SampleRate))
	case info.Channels < 1 || info.Channels > 2:
		r.add("identification", false, fmt.Sprintf("channel count %d", info.Channels))
	default:
		r.add("identification", true,
			fmt.Sprintf("%d ch, %d Hz, pre-skip %d", info.Channels, info.SampleRate, info.PreSkip))
	}

	vendor, err := ParseComment(pkts[1])
	if err != nil {
		r.add("comment", false, err.Error())
	} else {
		r.add("comment", true, fmt.Sprintf("vendor %q", vendor))
	}
}

func (r *Report) checkChapters(c *Container) {
	prev := uint32(1)
	for i, ch := range c.Header.ChapterPages {
		if ch <= prev {
			r.add("chapters", false,
				fmt.Sprintf("chapter %d at page %d not after %d", i, ch, prev))
			return
		}
		if int(ch) >= len(c.Pages) {
			r.add("chapters", false,
				fmt.Sprintf("chapter %d at page %d, only %d pages", i, ch, len(c.Pages)))
			return
		}
		if c.Pages[ch].Continued() {
			r.add("chapters", false,
				fmt.Sprintf("chapter %d at page %d starts mid-packet", i, ch))
			return
		}
		prev = ch
	}
	r.add("chapters", true, fmt.Sprintf("%d chapter markers", len(c.Header.ChapterPages)))
}
