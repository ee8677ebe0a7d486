//go:build purego

package erase

import "runtime"

// Zero overwrites b with zeros using a portable three-pass overwrite:
// all-zero, all-one, all-zero. runtime.KeepAlive after each pass keeps
// the slice live across the writes so the compiler cannot treat them as
// dead stores, and the intermediate all-one pass flips every bit at
// least once to discourage remanence of the original pattern.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}

	for i := range b {
		b[i] = 0x00
	}
	runtime.KeepAlive(b)

	for i := range b {
		b[i] = 0xFF
	}
	runtime.KeepAlive(b)

	for i := range b {
		b[i] = 0x00
	}
	runtime.KeepAlive(b)
}
