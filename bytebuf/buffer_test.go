package bytebuf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcke/bytesafe/bitops"
	"github.com/xcke/bytesafe/erase"
	"github.com/xcke/bytesafe/pad"
)

func TestConstructors(t *testing.T) {
	t.Run("New is empty with reserved capacity", func(t *testing.T) {
		b := New()
		assert.Zero(t, b.Len())
		assert.True(t, b.IsEmpty())
		assert.Equal(t, DefaultCapacity, cap(b.Raw()))
	})

	t.Run("WithCapacity", func(t *testing.T) {
		b := WithCapacity(16)
		assert.Zero(t, b.Len())
		assert.Equal(t, 16, cap(b.Raw()))
	})

	t.Run("FromBytes copies", func(t *testing.T) {
		src := []byte{0x01, 0x02}
		b := FromBytes(src)
		src[0] = 0xFF
		assert.Equal(t, []byte{0x01, 0x02}, b.Bytes())
	})

	t.Run("FromString keeps raw bytes", func(t *testing.T) {
		b := FromString("ab")
		assert.Equal(t, []byte{'a', 'b'}, b.Bytes())
	})

	t.Run("Adopt takes ownership without copying", func(t *testing.T) {
		src := []byte{0x01, 0x02}
		b := Adopt(src)
		src[0] = 0xFF
		assert.Equal(t, []byte{0xFF, 0x02}, b.Bytes())
	})

	t.Run("zero value is a usable empty buffer", func(t *testing.T) {
		var b Buffer
		assert.True(t, b.IsEmpty())
		b.Append(FromBytes([]byte{0x01}))
		assert.Equal(t, 1, b.Len())
	})
}

func TestResized(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		n    int
		dir  pad.Direction
		want []byte
	}{
		{name: "msb grow", src: []byte{0x01, 0x02, 0x03}, n: 5, dir: pad.MSB, want: []byte{0x00, 0x00, 0x01, 0x02, 0x03}},
		{name: "msb shrink", src: []byte{0x01, 0x02, 0x03, 0x04, 0x05}, n: 3, dir: pad.MSB, want: []byte{0x03, 0x04, 0x05}},
		{name: "lsb grow", src: []byte{0x01, 0x02, 0x03}, n: 5, dir: pad.LSB, want: []byte{0x01, 0x02, 0x03, 0x00, 0x00}},
		{name: "lsb shrink", src: []byte{0x01, 0x02, 0x03, 0x04, 0x05}, n: 3, dir: pad.LSB, want: []byte{0x01, 0x02, 0x03}},
		{name: "from empty", src: nil, n: 3, dir: pad.MSB, want: []byte{0x00, 0x00, 0x00}},
		{name: "to zero", src: []byte{0x01}, n: 0, dir: pad.LSB, want: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := FromBytes(tt.src)
			got := Resized(src, tt.n, tt.dir)
			assert.Equal(t, tt.want, got.Bytes())
			// Source is untouched.
			assert.Equal(t, len(tt.src), src.Len())
			assert.True(t, bytes.Equal(tt.src, src.Raw()))
		})
	}
}

func TestConcat(t *testing.T) {
	t.Run("preserves order and exact total length", func(t *testing.T) {
		a := FromBytes([]byte{0x01})
		b := FromBytes([]byte{0x02, 0x03})
		c := FromBytes(nil)
		got := Concat(a, b, c)
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, got.Bytes())
		assert.Equal(t, a.Len()+b.Len()+c.Len(), got.Len())
	})

	t.Run("no inputs", func(t *testing.T) {
		assert.True(t, Concat().IsEmpty())
	})
}

func TestAt(t *testing.T) {
	b := FromBytes([]byte{0x10, 0x20, 0x30})

	t.Run("in range", func(t *testing.T) {
		v, err := b.At(1)
		require.NoError(t, err)
		assert.Equal(t, byte(0x20), v)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := b.At(3)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		var ierr *IndexError
		require.True(t, errors.As(err, &ierr))
		assert.Equal(t, 3, ierr.Index)
		assert.Equal(t, 3, ierr.Len)
	})

	t.Run("negative index", func(t *testing.T) {
		_, err := b.At(-1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{name: "equal", a: []byte{0x01, 0x02}, b: []byte{0x01, 0x02}, want: true},
		{name: "different bytes", a: []byte{0x01, 0x02}, b: []byte{0x01, 0x03}, want: false},
		{name: "different lengths", a: []byte{0x01}, b: []byte{0x01, 0x00}, want: false},
		{name: "both empty", a: nil, b: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromBytes(tt.a).Equal(FromBytes(tt.b)))
		})
	}
}

func TestXOROperations(t *testing.T) {
	t.Run("XOR returns new buffer", func(t *testing.T) {
		a := FromBytes([]byte{0xAA, 0xBB})
		b := FromBytes([]byte{0x11, 0x22, 0x33})
		got := a.XOR(b)
		assert.Equal(t, []byte{0x11, 0x88, 0x88}, got.Bytes())
		assert.Equal(t, []byte{0xAA, 0xBB}, a.Bytes())
	})

	t.Run("XORAssign grows to the longer operand", func(t *testing.T) {
		a := FromBytes([]byte{0xAA, 0xBB})
		a.XORAssign(FromBytes([]byte{0x11, 0x22, 0x33}))
		assert.Equal(t, []byte{0x11, 0x88, 0x88}, a.Bytes())
	})

	t.Run("XORAssign with itself zeroes", func(t *testing.T) {
		a := FromBytes([]byte{0xDE, 0xAD})
		a.XORAssign(a)
		assert.Equal(t, []byte{0x00, 0x00}, a.Bytes())
	})

	t.Run("XORByte touches only the last byte", func(t *testing.T) {
		a := FromBytes([]byte{0x01, 0x02, 0x03})
		got := a.XORByte(0xFF)
		assert.Equal(t, []byte{0x01, 0x02, 0xFC}, got.Bytes())

		a.XORAssignByte(0x01)
		assert.Equal(t, []byte{0x01, 0x02, 0x02}, a.Bytes())
	})
}

func TestComplement(t *testing.T) {
	t.Run("returns inverted copy", func(t *testing.T) {
		a := FromBytes([]byte{0x00, 0xFF})
		got, err := a.Complement()
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0x00}, got.Bytes())
		assert.Equal(t, []byte{0x00, 0xFF}, a.Bytes())
	})

	t.Run("assign variant", func(t *testing.T) {
		a := FromBytes([]byte{0x0F})
		require.NoError(t, a.ComplementAssign())
		assert.Equal(t, []byte{0xF0}, a.Bytes())
		require.NoError(t, a.ComplementAssign())
		assert.Equal(t, []byte{0x0F}, a.Bytes())
	})

	t.Run("empty buffer is rejected", func(t *testing.T) {
		var a Buffer
		_, err := a.Complement()
		assert.ErrorIs(t, err, bitops.ErrEmptyInput)
		assert.ErrorIs(t, a.ComplementAssign(), bitops.ErrEmptyInput)
	})
}

func TestAppendClearDetach(t *testing.T) {
	t.Run("Append preserves order", func(t *testing.T) {
		a := FromBytes([]byte{0x01})
		a.Append(FromBytes([]byte{0x02, 0x03}))
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, a.Bytes())
	})

	t.Run("Clear keeps storage", func(t *testing.T) {
		a := FromBytes([]byte{0x01, 0x02})
		a.Clear()
		assert.True(t, a.IsEmpty())
	})

	t.Run("Detach moves storage out", func(t *testing.T) {
		a := FromBytes([]byte{0x01, 0x02})
		got := a.Detach()
		assert.Equal(t, []byte{0x01, 0x02}, got)
		assert.True(t, a.IsEmpty())
		// The moved-from buffer stays usable.
		a.Append(FromBytes([]byte{0x03}))
		assert.Equal(t, []byte{0x03}, a.Bytes())
	})
}

func TestResize(t *testing.T) {
	t.Run("grow msb prepends zeros", func(t *testing.T) {
		b := FromBytes([]byte{0x01, 0x02, 0x03})
		b.Resize(5, ResizeOptions{Direction: pad.MSB})
		assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x02, 0x03}, b.Bytes())
	})

	t.Run("shrink msb keeps tail", func(t *testing.T) {
		b := FromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
		b.Resize(3, ResizeOptions{Direction: pad.MSB})
		assert.Equal(t, []byte{0x03, 0x04, 0x05}, b.Bytes())
	})

	t.Run("default direction is lsb", func(t *testing.T) {
		b := FromBytes([]byte{0x01, 0x02, 0x03})
		b.Resize(5, ResizeOptions{})
		assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x00, 0x00}, b.Bytes())
	})

	t.Run("resize round trip restores surviving window", func(t *testing.T) {
		orig := []byte{0x10, 0x20, 0x30}
		b := FromBytes(orig)
		b.Resize(6, ResizeOptions{Direction: pad.MSB})
		b.Resize(3, ResizeOptions{Direction: pad.MSB})
		assert.Equal(t, orig, b.Bytes())
	})

	t.Run("shrink with warning writes diagnostic before data changes", func(t *testing.T) {
		var captured bytes.Buffer
		old := Diagnostics
		Diagnostics = &captured
		defer func() { Diagnostics = old }()

		b := FromBytes([]byte{0x01, 0x02, 0x03})
		b.Resize(2, ResizeOptions{WarnOnShrink: true})
		assert.Contains(t, captured.String(), "data remnants")
		assert.Equal(t, []byte{0x01, 0x02}, b.Bytes())
	})

	t.Run("grow never warns", func(t *testing.T) {
		var captured bytes.Buffer
		old := Diagnostics
		Diagnostics = &captured
		defer func() { Diagnostics = old }()

		b := FromBytes([]byte{0x01})
		b.Resize(4, ResizeOptions{WarnOnShrink: true, PurgeBeforeResize: true})
		assert.Empty(t, captured.String())
		assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, b.Bytes())
	})

	t.Run("purged shrink erases the old storage", func(t *testing.T) {
		b := FromBytes([]byte{0x01, 0x02, 0x03, 0x04})
		old := b.Raw()
		b.Resize(2, ResizeOptions{PurgeBeforeResize: true})
		assert.Equal(t, []byte{0x01, 0x02}, b.Bytes())
		assert.True(t, erase.VerifyZeroed(old[:cap(old)]))
	})

	t.Run("negative target clamps to zero", func(t *testing.T) {
		b := FromBytes([]byte{0x01})
		b.Resize(-1, ResizeOptions{})
		assert.True(t, b.IsEmpty())
	})
}

func TestWipe(t *testing.T) {
	t.Run("zeroes and releases storage", func(t *testing.T) {
		b := FromBytes([]byte{0xAA, 0xBB, 0xCC})
		old := b.Raw()
		verified, err := b.Wipe(erase.Options{VerifyAfterErase: true})
		require.NoError(t, err)
		assert.True(t, verified)
		assert.True(t, b.IsEmpty())
		assert.Zero(t, cap(b.Raw()))
		assert.True(t, erase.VerifyZeroed(old[:cap(old)]))
	})

	t.Run("empty buffer wipes trivially", func(t *testing.T) {
		var b Buffer
		verified, err := b.WipeDefault()
		require.NoError(t, err)
		assert.True(t, verified)
	})

	t.Run("erases full capacity, not just length", func(t *testing.T) {
		b := FromBytes([]byte{0x01, 0x02, 0x03, 0x04})
		b.Clear()
		backing := b.Raw()[:4]
		// Clear left the old bytes parked in capacity.
		_, err := b.WipeDefault()
		require.NoError(t, err)
		assert.True(t, erase.VerifyZeroed(backing))
	})

	t.Run("buffer stays usable after wipe", func(t *testing.T) {
		b := FromBytes([]byte{0x01})
		_, err := b.WipeDefault()
		require.NoError(t, err)
		b.Append(FromBytes([]byte{0x02}))
		assert.Equal(t, []byte{0x02}, b.Bytes())
	})
}
