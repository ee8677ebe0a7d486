// Package bitops implements bitwise algebra over byte sequences of
// possibly unequal length.
//
// Operands are right-aligned before combining: the last byte of each input
// lines up with the last byte of the result, matching the big-endian
// numeric interpretation used throughout this module. Positions not
// covered by the shorter operand are treated as zero.
//
// The allocating functions in this file are the safe API. The *Into
// variants in unchecked.go write into caller-supplied storage without
// allocating and without validating beyond a size check; see that file
// for their contract.
package bitops

import "errors"

// ErrEmptyInput is returned when an operation that requires at least one
// byte of input is given an empty sequence.
var ErrEmptyInput = errors.New("bitops: cannot process an empty byte sequence")

// XOR combines two byte sequences with right alignment and returns a new
// sequence of length max(len(a), len(b)). A result byte covered by only
// one operand equals that operand's byte; a byte covered by both equals
// their XOR. Empty operands are legal: XOR(nil, b) is a copy of b.
//
// XOR is commutative and self-inverse: XOR(a, a) is len(a) zero bytes.
func XOR(a, b []byte) []byte {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]byte, n)

	// Each operand is XORed exactly once into its aligned position, so
	// uncovered leading bytes stay zero.
	ao := n - len(a)
	for i, v := range a {
		out[ao+i] ^= v
	}
	bo := n - len(b)
	for i, v := range b {
		out[bo+i] ^= v
	}
	return out
}

// XORByte XORs a single byte with a sequence. It is the two-operand case
// with the byte treated as a one-byte sequence, so it affects only the
// last byte of a longer operand.
func XORByte(a []byte, b byte) []byte {
	return XOR(a, []byte{b})
}

// Complement returns the bitwise NOT of each input byte. The result has
// the same length as the input. Complementing nothing is rejected:
// an empty input returns ErrEmptyInput.
//
// Complement is an involution: applying it twice restores the input.
func Complement(a []byte) ([]byte, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	out := make([]byte, len(a))
	for i, v := range a {
		out[i] = ^v
	}
	return out, nil
}
