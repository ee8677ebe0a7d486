package bytebuf

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
)

// MaxRandomBytes caps a single random fill at 1 MiB.
const MaxRandomBytes = 1 << 20

// Random returns a buffer of n pseudo-random bytes. The generator is a
// ChaCha8 PRNG seeded once per call from the system entropy source; it
// is NOT cryptographically strong and must not be used for key material,
// nonces, or anything else security-sensitive.
//
// Requests above MaxRandomBytes fail with ErrRandomTooLarge; a negative
// n is rejected the same way.
func Random(n int) (Buffer, error) {
	if n < 0 || n > MaxRandomBytes {
		return Buffer{}, fmt.Errorf("%w: %d bytes requested, limit is %d", ErrRandomTooLarge, n, MaxRandomBytes)
	}

	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return Buffer{}, fmt.Errorf("bytebuf: seeding random generator: %w", err)
	}

	out := make([]byte, n)
	rand.NewChaCha8(seed).Read(out)
	return Buffer{data: out}, nil
}
