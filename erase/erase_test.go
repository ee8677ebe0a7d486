package erase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZero(t *testing.T) {
	t.Run("clears every byte", func(t *testing.T) {
		b := []byte{0xAA, 0xBB, 0xCC}
		Zero(b)
		assert.Equal(t, []byte{0x00, 0x00, 0x00}, b)
	})

	t.Run("handles nil and empty", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Zero(nil)
			Zero([]byte{})
		})
	})

	t.Run("clears large buffers", func(t *testing.T) {
		b := make([]byte, 64*1024)
		for i := range b {
			b[i] = byte(i)
		}
		Zero(b)
		assert.True(t, VerifyZeroed(b))
	})
}

func TestVerifyZeroed(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want bool
	}{
		{name: "all zero", in: []byte{0, 0, 0, 0}, want: true},
		{name: "empty", in: []byte{}, want: true},
		{name: "nil", in: nil, want: true},
		{name: "non-zero first byte", in: []byte{1, 0, 0}, want: false},
		{name: "non-zero last byte", in: []byte{0, 0, 1}, want: false},
		{name: "single set bit", in: []byte{0, 0x10, 0}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyZeroed(tt.in))
		})
	}
}

func TestErase(t *testing.T) {
	t.Run("zeroes and verifies", func(t *testing.T) {
		b := []byte{0xAA, 0xBB, 0xCC}
		verified, err := Erase(b, Options{VerifyAfterErase: true})
		require.NoError(t, err)
		assert.True(t, verified)
		assert.Equal(t, []byte{0x00, 0x00, 0x00}, b)
	})

	t.Run("no verification requested reports verified", func(t *testing.T) {
		b := []byte{0xFF}
		verified, err := Erase(b, Options{})
		require.NoError(t, err)
		assert.True(t, verified)
		assert.Equal(t, []byte{0x00}, b)
	})

	t.Run("empty buffer verifies trivially", func(t *testing.T) {
		verified, err := Erase(nil, Options{VerifyAfterErase: true, FailOnVerificationFailure: true})
		require.NoError(t, err)
		assert.True(t, verified)
	})

	t.Run("strict mode on a clean erase returns no error", func(t *testing.T) {
		b := make([]byte, 128)
		for i := range b {
			b[i] = 0xA5
		}
		verified, err := Erase(b, Options{VerifyAfterErase: true, FailOnVerificationFailure: true})
		require.NoError(t, err)
		assert.True(t, verified)
	})
}

func TestVerificationError(t *testing.T) {
	var err error = &VerificationError{Size: 42}

	t.Run("matches the sentinel kind", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrVerificationFailed)
	})

	t.Run("carries the buffer size", func(t *testing.T) {
		var verr *VerificationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, 42, verr.Size)
		assert.Contains(t, verr.Error(), "42")
	})
}
