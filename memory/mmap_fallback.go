//go:build !unix

package memory

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// MapAnonymous allocates size bytes from the Go heap when mmap is not available. The addresses of the
// returned arena are the real addresses of the buffer.
func MapAnonymous(size int) (*Arena, func() error, error) {
	if size <= 0 {
		return nil, nil, errors.Newf("cannot map a region of %d bytes", size)
	}

	data := make([]byte, size)
	return NewArena(Address(uintptr(unsafe.Pointer(&data[0]))), data), func() error { return nil }, nil
}
