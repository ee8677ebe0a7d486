// Package pad defines the padding direction used when a byte sequence
// changes length, and the pure alignment arithmetic shared by every
// size-changing operation in this module.
//
// A byte sequence is interpreted as a big-endian numeric quantity, so the
// two directions correspond to the two ends worth preserving:
//
//   - LSB (the default) treats the sequence as left-justified raw bytes.
//     Growing appends zero bytes, shrinking discards the tail.
//   - MSB treats the sequence as a right-justified number. Growing prepends
//     zero bytes, shrinking discards the head, preserving numeric
//     significance.
package pad

// Direction selects which end of a byte sequence survives a length change.
type Direction int

const (
	// LSB preserves the leading (least-significant-aligned) bytes: zeros
	// are appended on growth and trailing bytes are discarded on shrink.
	LSB Direction = iota
	// MSB preserves the trailing (most-significant-aligned) bytes: zeros
	// are prepended on growth and leading bytes are discarded on shrink.
	MSB
)

// String returns "lsb" or "msb". Unknown values format as "lsb" since LSB
// is the zero value and default.
func (d Direction) String() string {
	if d == MSB {
		return "msb"
	}
	return "lsb"
}

// Plan describes how a source of one length maps onto a destination of
// another: which window of the source is copied and where it lands. All
// destination bytes outside the landing window are zero padding.
type Plan struct {
	// SrcLo and SrcHi bound the half-open window of source bytes that
	// survive the length change.
	SrcLo, SrcHi int
	// Dst is the destination index where the surviving window begins.
	Dst int
}

// Make computes the copy plan for resizing a sequence of oldLen bytes to
// newLen bytes in the given direction. Both lengths may be zero; the
// surviving window is empty in that case.
func Make(oldLen, newLen int, d Direction) Plan {
	n := oldLen
	if newLen < n {
		n = newLen
	}
	if d == MSB {
		return Plan{SrcLo: oldLen - n, SrcHi: oldLen, Dst: newLen - n}
	}
	return Plan{SrcLo: 0, SrcHi: n, Dst: 0}
}

// Apply resizes src into dst according to the direction: the surviving
// window of src is copied into place and every other byte of dst is set to
// zero. len(dst) is the target length; src is never modified.
func Apply(dst, src []byte, d Direction) {
	p := Make(len(src), len(dst), d)
	for i := 0; i < p.Dst; i++ {
		dst[i] = 0
	}
	n := copy(dst[p.Dst:], src[p.SrcLo:p.SrcHi])
	for i := p.Dst + n; i < len(dst); i++ {
		dst[i] = 0
	}
}
