// ABOUTME: Structural comparison of two containers
// ABOUTME: Header field diff plus optional per-page byte-offset inspection

package taf

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DiffEntry is one observed difference.
type DiffEntry struct {
	Field string
	A     string
	B     string
}

// DiffReport lists every difference found between two containers. An empty
// report means the containers are structurally identical at the requested
// detail level.
type DiffReport struct {
	Entries []DiffEntry
}

// Identical reports whether no differences were found.
func (r *DiffReport) Identical() bool { return len(r.Entries) == 0 }

func (r *DiffReport) String() string {
	if r.Identical() {
		return "containers are identical\n"
	}
	var b strings.Builder
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%-24s %s | %s\n", e.Field, e.A, e.B)
	}
	return b.String()
}

func (r *DiffReport) add(field, a, b string) {
	r.Entries = append(r.Entries, DiffEntry{Field: field, A: a, B: b})
}

// Diff structurally compares two containers. Size and header differences
// are reported first; with detailed set, mismatched page pairs are walked
// and the first differing byte offset of each is reported.
func Diff(a, b *Container, detailed bool) *DiffReport {
	r := &DiffReport{}

	if len(a.Raw) != len(b.Raw) {
		r.add("total-size", fmt.Sprintf("%d", len(a.Raw)), fmt.Sprintf("%d", len(b.Raw)))
	}

	if a.Header.Hash != b.Header.Hash {
		r.add("header.hash",
			hex.EncodeToString(a.Header.Hash[:]), hex.EncodeToString(b.Header.Hash[:]))
	}
	if a.Header.DataLength != b.Header.DataLength {
		r.add("header.dataLength",
			fmt.Sprintf("%d", a.Header.DataLength), fmt.Sprintf("%d", b.Header.DataLength))
	}
	if a.Header.Timestamp != b.Header.Timestamp {
		r.add("header.timestamp",
			fmt.Sprintf("%d", a.Header.Timestamp), fmt.Sprintf("%d", b.Header.Timestamp))
	}
	if chA, chB := fmt.Sprint(a.Header.ChapterPages), fmt.Sprint(b.Header.ChapterPages); chA != chB {
		r.add("header.chapterPages", chA, chB)
	}

	if len(a.Pages) != len(b.Pages) {
		r.add("page-count",
			fmt.Sprintf("%d", len(a.Pages)), fmt.Sprintf("%d", len(b.Pages)))
	}

	if !detailed {
		return r
	}

	n := len(a.Pages)
	if len(b.Pages) < n {
		n = len(b.Pages)
	}
	for i := 0; i < n; i++ {
		pa, errA := a.Pages[i].Serialize()
		pb, errB := b.Pages[i].Serialize()
		if errA != nil || errB != nil {
			r.add(fmt.Sprintf("page[%d]", i), fmt.Sprint(errA), fmt.Sprint(errB))
			continue
		}
		if off, ok := firstDiff(pa, pb); ok {
			r.add(fmt.Sprintf("page[%d]", i),
				fmt.Sprintf("differs at byte %d", off),
				fmt.Sprintf("sizes %d/%d", len(pa), len(pb)))
		}
	}
	return r
}

// firstDiff returns the offset of the first differing byte.
func firstDiff(a, b []byte) (int, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i, true
		}
	}
	if len(a) != len(b) {
		return n, true
	}
	return 0, false
}
