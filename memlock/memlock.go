//go:build linux

// Package memlock holds byte material in memory that the operating
// system will not swap to disk and the Go garbage collector will never
// copy or relocate.
//
// A Region is backed by an anonymous mmap allocation that is mlock'd
// into physical RAM and excluded from core dumps via
// madvise(MADV_DONTDUMP). Close zeroes the region through the erase
// primitive, unlocks it, and unmaps it; after Close any access panics.
//
// This complements the best-effort erasure in package erase: a wiped
// heap buffer may already have been copied by the runtime, while a
// Region's single copy lives outside the heap for its whole lifetime.
package memlock

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/xcke/bytesafe/bytebuf"
	"github.com/xcke/bytesafe/erase"
)

// Region is a fixed-size, mlock'd, off-heap byte allocation. It must not
// be copied after creation; use Close to release it.
type Region struct {
	mu     sync.Mutex
	mem    []byte
	closed bool
}

// New allocates a zero-filled locked region of n bytes.
func New(n int) (*Region, error) {
	if n <= 0 {
		return nil, fmt.Errorf("memlock: region size must be positive, got %d", n)
	}

	mem, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("memlock: mmap: %w", err)
	}

	if err := unix.Mlock(mem); err != nil {
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("memlock: mlock: %w", err)
	}

	if err := unix.Madvise(mem, unix.MADV_DONTDUMP); err != nil {
		_ = unix.Munlock(mem)
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("memlock: madvise(MADV_DONTDUMP): %w", err)
	}

	return &Region{mem: mem}, nil
}

// FromBuffer moves a buffer's contents into a new locked region and
// securely wipes the source, so the only remaining copy of the material
// lives in locked memory. The source buffer is left empty.
func FromBuffer(src *bytebuf.Buffer) (*Region, error) {
	if src.IsEmpty() {
		return nil, fmt.Errorf("memlock: cannot lock an empty buffer")
	}

	region, err := New(src.Len())
	if err != nil {
		return nil, err
	}

	copy(region.mem, src.Raw())

	if _, err := src.WipeDefault(); err != nil {
		_ = region.Close()
		return nil, fmt.Errorf("memlock: wiping source buffer: %w", err)
	}

	return region, nil
}

// Bytes returns the locked storage itself, not a copy: writes through the
// slice land in the region, and the slice must not outlive it. Panics if
// the region has been closed.
func (r *Region) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		panic("memlock: access to closed region")
	}
	return r.mem
}

// Len returns the region size in bytes, or zero after Close.
func (r *Region) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.mem)
}

// Close zeroes the region, unlocks it, and unmaps it. Idempotent. The
// zeroing happens before release because munmap alone does not clear
// the pages.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	erase.Zero(r.mem)

	var firstErr error
	if err := unix.Munlock(r.mem); err != nil {
		firstErr = fmt.Errorf("memlock: munlock: %w", err)
	}
	if err := unix.Munmap(r.mem); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("memlock: munmap: %w", err)
	}

	r.mem = nil
	return firstErr
}
