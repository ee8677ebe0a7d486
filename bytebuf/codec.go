package bytebuf

// Big-endian uint64 codec. This is the one bit-exact wire-format
// contract in the package: most significant byte first, matching network
// byte order.

// FromUint64 encodes v as the minimal number of big-endian bytes needed
// to represent it: no leading zero byte, except that the value zero
// encodes as exactly one zero byte.
func FromUint64(v uint64) Buffer {
	n := 1
	for t := v >> 8; t != 0; t >>= 8 {
		n++
	}
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return Buffer{data: out}
}

// Uint64 folds the buffer's bytes most-significant-first into a uint64.
// Buffers longer than eight bytes cannot be represented and fail with
// ErrValueTooLarge. An empty buffer converts to zero.
func (b Buffer) Uint64() (uint64, error) {
	if len(b.data) > 8 {
		return 0, ErrValueTooLarge
	}
	var v uint64
	for _, x := range b.data {
		v = v<<8 | uint64(x)
	}
	return v, nil
}
