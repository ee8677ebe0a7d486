//go:build !purego

package erase

import (
	"runtime"
	"unsafe"
)

// memclrNoHeapPointers is the runtime's optimized memory clear. The
// runtime never elides it, which is the property a secure wipe needs:
// an ordinary zeroing loop on a buffer about to go out of scope is a
// dead store the compiler is entitled to remove.
//
//go:linkname memclrNoHeapPointers runtime.memclrNoHeapPointers
//go:noescape
func memclrNoHeapPointers(ptr unsafe.Pointer, n uintptr)

// Zero overwrites b with zeros using the runtime memclr primitive.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	memclrNoHeapPointers(unsafe.Pointer(&b[0]), uintptr(len(b)))
	runtime.KeepAlive(b)
}
