// Package erase provides best-effort secure erasure of byte buffers with
// constant-time verification.
//
// Zeroing is a capability selected at build time, not at runtime: the
// default build clears memory through the Go runtime's non-optimizable
// memclr primitive, while builds tagged "purego" fall back to a
// multi-pass overwrite fenced against dead-store elimination. Exactly one
// implementation is compiled per target.
//
// Erasure reduces data remanence but cannot guarantee it. Memory may have
// been swapped to disk, compressed, or copied by the garbage collector
// before the erase ran, and nothing here defends against hardware-level
// remanence. The API takes flat []byte only; values containing pointers
// have no meaningful erasure semantics and are excluded by the type.
package erase

import (
	"errors"
	"fmt"
)

// ErrVerificationFailed is the kind matched by errors.Is when post-erase
// verification finds non-zero bytes and strict mode is enabled.
var ErrVerificationFailed = errors.New("erase: verification found non-zero bytes after erasure")

// VerificationError reports a failed post-erase verification. It unwraps
// to ErrVerificationFailed.
type VerificationError struct {
	// Size is the length in bytes of the buffer that failed verification.
	Size int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("erase: verification failed for %d-byte buffer", e.Size)
}

func (e *VerificationError) Unwrap() error {
	return ErrVerificationFailed
}

// Options configures an erasure call. The zero value erases without
// verifying.
type Options struct {
	// VerifyAfterErase re-reads every byte after zeroing and checks that
	// all are zero.
	VerifyAfterErase bool
	// FailOnVerificationFailure makes a failed verification return a
	// *VerificationError instead of just reporting false.
	FailOnVerificationFailure bool
}

// Erase overwrites every byte of b with zero and, if requested, verifies
// the result. It returns whether the buffer verified (always true when
// verification was not requested). When verification fails and
// Options.FailOnVerificationFailure is set, the returned error is a
// *VerificationError; otherwise a failure is reported as (false, nil).
//
// Empty and nil buffers erase trivially and report verified = true.
func Erase(b []byte, opts Options) (bool, error) {
	if len(b) == 0 {
		return true, nil
	}

	Zero(b)

	if !opts.VerifyAfterErase {
		return true, nil
	}
	if VerifyZeroed(b) {
		return true, nil
	}
	if opts.FailOnVerificationFailure {
		return false, &VerificationError{Size: len(b)}
	}
	return false, nil
}

// VerifyZeroed reports whether every byte of b is zero. All bytes are
// examined regardless of where a non-zero byte sits, so the running time
// does not leak the position of residual data.
func VerifyZeroed(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
