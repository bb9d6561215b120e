//go:build unix

package memory

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// MapAnonymous maps size bytes of zeroed, private, anonymous memory and returns it as an arena whose
// addresses are the real addresses of the mapping. The returned cleanup function unmaps the region;
// the arena must not be used afterward.
func MapAnonymous(size int) (*Arena, func() error, error) {
	if size <= 0 {
		return nil, nil, errors.Newf("cannot map a region of %d bytes", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "mmap of %d bytes failed", size)
	}

	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		return errors.Wrap(err, "munmap failed")
	}

	return NewArena(Address(uintptr(unsafe.Pointer(&data[0]))), data), cleanup, nil
}
