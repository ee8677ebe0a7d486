package bytebuf

// Hex codec for buffers.
//
// This is deliberately not encoding/hex: odd-length input is legal here
// and is read as having an implicit leading zero nibble on its final
// byte, so "fe81eabd5" parses to fe 81 ea bd 05. Digits are consumed in
// pairs from the left; the lone trailing digit, if any, becomes the low
// nibble of the last byte.

const hexDigits = "0123456789abcdef"

// FromHex parses a string of hex digits into a buffer. Both cases are
// accepted. Any character outside [0-9a-fA-F] fails with a *HexError
// (matching ErrInvalidHex) identifying the offending position. An empty
// string parses to an empty buffer.
func FromHex(s string) (Buffer, error) {
	out := make([]byte, (len(s)+1)/2)
	idx := 0

	for i := 0; i < len(s); i += 2 {
		var hi byte
		lo := i
		if i+1 < len(s) {
			h, ok := nibble(s[i])
			if !ok {
				return Buffer{}, &HexError{Pos: i, Char: s[i]}
			}
			hi = h
			lo = i + 1
		}
		l, ok := nibble(s[lo])
		if !ok {
			return Buffer{}, &HexError{Pos: lo, Char: s[lo]}
		}
		out[idx] = hi<<4 | l
		idx++
	}

	return Buffer{data: out}, nil
}

// Hex formats the buffer as exactly two lowercase hex characters per
// byte, zero-padded.
func (b Buffer) Hex() string {
	out := make([]byte, 2*len(b.data))
	for i, v := range b.data {
		out[2*i] = hexDigits[v>>4]
		out[2*i+1] = hexDigits[v&0x0F]
	}
	return string(out)
}

// nibble maps one hex digit to its value.
func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
