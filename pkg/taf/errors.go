// ABOUTME: Error taxonomy for the TAF codec
// ABOUTME: Sentinel errors grouped into format/structural/integrity/capacity/input kinds

package taf

// ErrorKind classifies codec errors. Every sentinel below belongs to exactly
// one kind; callers that only care about the class can use Kind.
type ErrorKind int

const (
	// FormatError covers broken on-wire framing: bad capture pattern,
	// checksum mismatches, truncated or malformed structures.
	FormatError ErrorKind = iota
	// StructuralError covers well-framed but structurally invalid input,
	// such as an unsupported identification packet.
	StructuralError
	// IntegrityError covers content hash mismatches.
	IntegrityError
	// CapacityError covers values that cannot be represented, such as a
	// lacing table past 255 entries or a header past the block size.
	CapacityError
	// InputError covers unusable caller input: empty track lists and
	// serial or sequence discontinuities in source material.
	InputError
)

// Error is a typed codec error. All fallible operations in this package
// return either nil or an error wrapping one of the sentinels below.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string { return "taf: " + e.msg }

func newErr(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

var (
	// ErrCapturePattern reports a page that does not start with "OggS".
	ErrCapturePattern = newErr(FormatError, "capture pattern mismatch")
	// ErrChecksumMismatch reports a page whose stored CRC disagrees with
	// the recomputed one.
	ErrChecksumMismatch = newErr(FormatError, "page checksum mismatch")
	// ErrTruncatedPage reports a page buffer shorter than its framing claims.
	ErrTruncatedPage = newErr(FormatError, "truncated page")
	// ErrTruncatedHeader reports a header block whose length prefix claims
	// more bytes than are available.
	ErrTruncatedHeader = newErr(FormatError, "truncated header")
	// ErrMalformedHeader reports a structurally invalid header encoding.
	ErrMalformedHeader = newErr(FormatError, "malformed header")

	// ErrUnsupportedStreamFormat reports an identification packet that is
	// not a known format.
	ErrUnsupportedStreamFormat = newErr(StructuralError, "unsupported stream format")

	// ErrHashMismatch reports a content hash that does not cover the page
	// payloads of the container carrying it.
	ErrHashMismatch = newErr(IntegrityError, "content hash mismatch")

	// ErrLacingOverflow reports a page that would need more than 255
	// lacing entries.
	ErrLacingOverflow = newErr(CapacityError, "lacing table overflow")
	// ErrHeaderOverflow reports header fields that do not fit the fixed
	// header block.
	ErrHeaderOverflow = newErr(CapacityError, "header block overflow")

	// ErrEmptyInput reports a build with no tracks.
	ErrEmptyInput = newErr(InputError, "no input tracks")
	// ErrSerialDiscontinuity reports a serial number change mid-stream.
	ErrSerialDiscontinuity = newErr(InputError, "bitstream serial discontinuity")
	// ErrSequenceGap reports non-consecutive page sequence numbers.
	ErrSequenceGap = newErr(InputError, "page sequence gap")
	// ErrZeroPacket reports a caller packet consisting entirely of zero
	// bytes; such payloads are reserved for page padding.
	ErrZeroPacket = newErr(InputError, "all-zero packet reserved for padding")
	// ErrInvalidBoundary reports a track boundary index that is out of
	// range or not strictly increasing.
	ErrInvalidBoundary = newErr(InputError, "invalid track boundary")
)
