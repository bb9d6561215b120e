// Package memory models byte-addressable physical memory as arenas: byte slices mapped at an absolute
// base address. Everything that the heap allocator stores in memory (block headers, back-references) is
// encoded into an Arena as little-endian machine words, so the allocator can run against a test buffer, a
// host mmap region, or the real heap region of a bare-metal board with the same code.
package memory

import (
	"strconv"
	"unsafe"
)

// Address is an absolute byte address
type Address uintptr

// Null is the address returned in place of a pointer when there is nothing to point at
const Null Address = 0

// WordSize is the size in bytes of one machine word on the target
const WordSize = int(unsafe.Sizeof(uintptr(0)))

// Add returns the address offset bytes past a
func (a Address) Add(offset int) Address {
	return Address(int(a) + offset)
}

// Sub returns the number of bytes between other and a. It is negative when other is above a.
func (a Address) Sub(other Address) int {
	return int(a) - int(other)
}

// IsAligned reports whether a is a multiple of alignment
func (a Address) IsAligned(alignment uint) bool {
	return uint(a)%alignment == 0
}

func (a Address) String() string {
	return "0x" + strconv.FormatUint(uint64(a), 16)
}
