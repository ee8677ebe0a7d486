// Package bytebuf implements an owned, variable-length byte buffer
// intended as a building block for cryptographic code.
//
// A Buffer holds a contiguous sequence of bytes interpreted as a
// big-endian (network byte order) numeric quantity when converted to or
// from integers. On top of plain storage it layers three behaviors with
// real edge-case semantics: right-aligned bitwise algebra (package
// bitops), direction-aware resizing (package pad), and best-effort
// secure erasure with constant-time verification (package erase).
//
// Buffers have single-owner value semantics and no internal locking.
// Concurrent readers are safe only while no writer is active; callers
// provide any synchronization they need.
package bytebuf

import (
	"fmt"
	"io"
	"os"

	"github.com/xcke/bytesafe/bitops"
	"github.com/xcke/bytesafe/erase"
	"github.com/xcke/bytesafe/pad"
)

// DefaultCapacity is the storage reserved by New before any bytes are
// written. Sized for typical key and digest material so early appends do
// not reallocate.
const DefaultCapacity = 1024

// Diagnostics receives non-fatal warnings from buffer operations, such as
// the data-remanence warning on shrinking resizes. It defaults to stderr;
// tests and embedding applications may replace it.
var Diagnostics io.Writer = os.Stderr

// Buffer is an owned, contiguous, dynamically sized byte sequence.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	data []byte
}

// New returns an empty buffer with DefaultCapacity bytes reserved.
func New() Buffer {
	return Buffer{data: make([]byte, 0, DefaultCapacity)}
}

// WithCapacity returns an empty buffer with n bytes reserved. A negative
// n reserves nothing.
func WithCapacity(n int) Buffer {
	if n < 0 {
		n = 0
	}
	return Buffer{data: make([]byte, 0, n)}
}

// FromBytes returns a buffer holding a copy of p. The caller keeps
// ownership of p; later changes to it do not affect the buffer.
func FromBytes(p []byte) Buffer {
	data := make([]byte, len(p))
	copy(data, p)
	return Buffer{data: data}
}

// FromString returns a buffer holding the raw bytes of s.
func FromString(s string) Buffer {
	return Buffer{data: []byte(s)}
}

// Adopt returns a buffer that takes ownership of p without copying. The
// caller must not use p afterwards; this is the move-construction path
// for storage that is already exclusively owned.
func Adopt(p []byte) Buffer {
	return Buffer{data: p}
}

// Resized builds a new buffer of exactly n bytes from src, preserving
// the end selected by the direction and zero-padding the rest. src is
// not modified.
func Resized(src Buffer, n int, d pad.Direction) Buffer {
	if n < 0 {
		n = 0
	}
	data := make([]byte, n)
	pad.Apply(data, src.data, d)
	return Buffer{data: data}
}

// Concat returns a new buffer holding the bytes of every input in order.
// The result length is the exact sum of the input lengths.
func Concat(bufs ...Buffer) Buffer {
	total := 0
	for _, b := range bufs {
		total += len(b.data)
	}
	data := make([]byte, 0, total)
	for _, b := range bufs {
		data = append(data, b.data...)
	}
	return Buffer{data: data}
}

// Len returns the number of bytes in the buffer. Logical size is the
// only externally observable length; reserved capacity is not.
func (b Buffer) Len() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer holds no bytes.
func (b Buffer) IsEmpty() bool {
	return len(b.data) == 0
}

// At returns the byte at index i, or an *IndexError (matching
// ErrIndexOutOfRange) when i is negative or beyond the last byte.
func (b Buffer) At(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, &IndexError{Index: i, Len: len(b.data)}
	}
	return b.data[i], nil
}

// Raw returns the buffer's backing storage without copying and without
// any validation. This is the unchecked accessor for performance paths:
// the slice aliases the buffer, so writes through it mutate the buffer
// and it must not be retained across a Resize or Wipe.
func (b Buffer) Raw() []byte {
	return b.data
}

// Bytes returns a copy of the buffer's contents.
func (b Buffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Equal reports whether two buffers hold identical byte sequences. A
// length mismatch is unequal immediately; otherwise every byte is
// compared with no early exit.
func (b Buffer) Equal(other Buffer) bool {
	if len(b.data) != len(other.data) {
		return false
	}
	var diff byte
	for i := range b.data {
		diff |= b.data[i] ^ other.data[i]
	}
	return diff == 0
}

// XOR returns a new buffer combining b and other with right alignment;
// see bitops.XOR for the alignment rule.
func (b Buffer) XOR(other Buffer) Buffer {
	return Buffer{data: bitops.XOR(b.data, other.data)}
}

// XORByte returns a new buffer with x XORed into the last byte.
func (b Buffer) XORByte(x byte) Buffer {
	return Buffer{data: bitops.XORByte(b.data, x)}
}

// XORAssign replaces b's contents with XOR(b, other). The buffer may
// grow when other is longer.
func (b *Buffer) XORAssign(other Buffer) {
	b.data = bitops.XOR(b.data, other.data)
}

// XORAssignByte XORs x into the buffer's last byte in place.
func (b *Buffer) XORAssignByte(x byte) {
	b.data = bitops.XORByte(b.data, x)
}

// Complement returns a new buffer with every byte inverted. An empty
// buffer is rejected with bitops.ErrEmptyInput.
func (b Buffer) Complement() (Buffer, error) {
	out, err := bitops.Complement(b.data)
	if err != nil {
		return Buffer{}, err
	}
	return Buffer{data: out}, nil
}

// ComplementAssign inverts every byte in place via reassignment. An
// empty buffer is rejected with bitops.ErrEmptyInput.
func (b *Buffer) ComplementAssign() error {
	out, err := bitops.Complement(b.data)
	if err != nil {
		return err
	}
	b.data = out
	return nil
}

// Append appends other's bytes to b, preserving order.
func (b *Buffer) Append(other Buffer) {
	b.data = append(b.data, other.data...)
}

// Clear resets the buffer to zero length without erasing or releasing
// storage. Use Wipe when the discarded contents are sensitive.
func (b *Buffer) Clear() {
	b.data = b.data[:0]
}

// Detach transfers the buffer's storage to the caller and leaves the
// buffer empty. This is the move-out path: no copy is made and the
// buffer remains valid for reuse.
func (b *Buffer) Detach() []byte {
	out := b.data
	b.data = nil
	return out
}

// ResizeOptions controls Resize behavior. The zero value resizes with
// LSB padding, no purge, and no warning.
type ResizeOptions struct {
	// PurgeBeforeResize securely erases the old storage when the resize
	// shrinks the buffer, so discarded bytes do not linger in freed
	// capacity. Growing never purges.
	PurgeBeforeResize bool
	// WarnOnShrink emits a data-remanence diagnostic to Diagnostics
	// before a shrinking resize touches any data. Growing never warns.
	WarnOnShrink bool
	// Direction selects which end of the buffer survives the resize.
	Direction pad.Direction
}

// Resize changes the buffer's length to n per the direction's padding
// rule. When shrinking with PurgeBeforeResize set, the surviving window
// is copied out first and the old storage is securely erased rather than
// silently dropped.
func (b *Buffer) Resize(n int, opts ResizeOptions) {
	if n < 0 {
		n = 0
	}
	shrink := n < len(b.data)

	if shrink && opts.WarnOnShrink {
		fmt.Fprintln(Diagnostics, "bytesafe: shrinking a buffer can leave data remnants in freed storage; resize with purge to erase the discarded bytes")
	}

	if shrink && opts.PurgeBeforeResize {
		next := make([]byte, n)
		pad.Apply(next, b.data, opts.Direction)
		erase.Zero(b.data[:cap(b.data)])
		b.data = next
		return
	}

	next := make([]byte, n)
	pad.Apply(next, b.data, opts.Direction)
	b.data = next
}

// Wipe securely erases the buffer's storage per opts and then releases
// it, leaving the buffer empty so the freed memory holds no reachable
// copy. The full capacity is erased, not just the logical length, since
// earlier shrinks may have parked bytes there.
//
// The verified result follows erase.Erase. If strict verification fails,
// the error is returned and the storage is retained (still zeroed by the
// attempt) so the caller can decide what to do with it.
func (b *Buffer) Wipe(opts erase.Options) (bool, error) {
	if len(b.data) == 0 && cap(b.data) == 0 {
		b.data = nil
		return true, nil
	}

	verified, err := erase.Erase(b.data[:cap(b.data)], opts)
	if err != nil {
		return verified, err
	}
	b.data = nil
	return verified, nil
}

// WipeDefault wipes with verification on and strict failure on, the
// posture destructive callers almost always want.
func (b *Buffer) WipeDefault() (bool, error) {
	return b.Wipe(erase.Options{VerifyAfterErase: true, FailOnVerificationFailure: true})
}
