package bitops

// Unchecked, allocation-free variants of the package's operations.
//
// These exist for zero-copy fast paths against externally owned storage.
// They perform no allocation and no validation beyond a destination size
// check: when the destination is too small or a required slice is nil,
// they silently do nothing. Callers must verify sizes beforehand; these
// functions have no error path.

// XORInto right-align-XORs a and b into dst without allocating. The
// required destination size is max(len(a), len(b)); dst is fully zeroed
// first, operands are aligned to the required size, and any destination
// tail beyond it is left zero. A nil or undersized dst is a no-op.
func XORInto(dst, a, b []byte) {
	need := len(a)
	if len(b) > need {
		need = len(b)
	}
	if dst == nil || len(dst) < need {
		return
	}
	for i := range dst {
		dst[i] = 0
	}
	ao := need - len(a)
	copy(dst[ao:], a)
	bo := need - len(b)
	for i, v := range b {
		dst[bo+i] ^= v
	}
}

// XORByteInto writes a right-aligned to dst and XORs b into the final
// destination byte. Unlike XORInto, the operand is aligned to len(dst)
// itself, which is the alignment a caller doing constant-time single-byte
// masking wants. A nil dst or len(dst) < len(a) is a no-op.
func XORByteInto(dst, a []byte, b byte) {
	if dst == nil || len(dst) < len(a) || len(dst) == 0 {
		return
	}
	for i := range dst {
		dst[i] = 0
	}
	copy(dst[len(dst)-len(a):], a)
	dst[len(dst)-1] ^= b
}

// ComplementInto writes the bitwise NOT of src into dst without
// allocating. A nil slice on either side or len(dst) < len(src) is a
// no-op; an empty src writes nothing (the empty-input policy of
// Complement belongs to the safe API, not this one).
func ComplementInto(dst, src []byte) {
	if dst == nil || src == nil || len(dst) < len(src) {
		return
	}
	for i, v := range src {
		dst[i] = ^v
	}
}
