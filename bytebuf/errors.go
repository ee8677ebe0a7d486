package bytebuf

import (
	"errors"
	"fmt"
)

// ErrInvalidHex is the kind matched by errors.Is when hex input contains
// a character outside [0-9a-fA-F]. The concrete error is a *HexError.
var ErrInvalidHex = errors.New("bytebuf: invalid hex input")

// ErrValueTooLarge is returned when converting a buffer of more than
// eight bytes to a uint64.
var ErrValueTooLarge = errors.New("bytebuf: buffer is larger than 64 bits and cannot be represented as a uint64")

// ErrRandomTooLarge is returned when a random fill request exceeds
// MaxRandomBytes.
var ErrRandomTooLarge = errors.New("bytebuf: requested random bytes exceed maximum allowed size")

// ErrIndexOutOfRange is the kind matched by errors.Is for out-of-bounds
// indexed access. The concrete error is an *IndexError.
var ErrIndexOutOfRange = errors.New("bytebuf: index out of range")

// HexError reports the first invalid character found while parsing hex
// input. It unwraps to ErrInvalidHex.
type HexError struct {
	// Pos is the 0-based position of the offending character.
	Pos int
	// Char is the offending character.
	Char byte
}

func (e *HexError) Error() string {
	return fmt.Sprintf("bytebuf: invalid hex character %q at position %d", e.Char, e.Pos)
}

func (e *HexError) Unwrap() error {
	return ErrInvalidHex
}

// IndexError reports an indexed access beyond the buffer's length. It
// unwraps to ErrIndexOutOfRange.
type IndexError struct {
	// Index is the requested index.
	Index int
	// Len is the buffer length at the time of access.
	Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bytebuf: index %d out of range for %d-byte buffer", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
