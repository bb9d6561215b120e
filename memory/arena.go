package memory

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Arena is a contiguous range of memory [Base(), End()) backed by a byte slice. All accesses are
// bounds-checked: touching memory outside of the arena is an invariant breach and panics with an
// assertion failure, since there is nothing sensible for the caller to do with a stray address.
type Arena struct {
	base Address
	data []byte
}

// NewArena maps data at the provided base address
func NewArena(base Address, data []byte) *Arena {
	return &Arena{
		base: base,
		data: data,
	}
}

// NewBufferArena allocates a zeroed arena of size bytes mapped at base. It is intended for tests and
// simulations that do not need real addresses.
func NewBufferArena(base Address, size int) *Arena {
	return NewArena(base, make([]byte, size))
}

// Base returns the lowest address in the arena
func (a *Arena) Base() Address { return a.base }

// End returns the address one past the highest address in the arena
func (a *Arena) End() Address { return a.base.Add(len(a.data)) }

// Size returns the number of bytes in the arena
func (a *Arena) Size() int { return len(a.data) }

// Contains reports whether the n bytes starting at addr all lie inside the arena
func (a *Arena) Contains(addr Address, n int) bool {
	if n < 0 || addr < a.base {
		return false
	}

	offset := addr.Sub(a.base)
	return offset <= len(a.data) && n <= len(a.data)-offset
}

// CheckRange returns an error if the n bytes starting at addr do not all lie inside the arena
func (a *Arena) CheckRange(addr Address, n int) error {
	if !a.Contains(addr, n) {
		return errors.Newf("range [%s, %s) lies outside of arena [%s, %s)", addr, addr.Add(n), a.base, a.End())
	}

	return nil
}

func (a *Arena) offset(addr Address, n int) int {
	if !a.Contains(addr, n) {
		panic(errors.AssertionFailedf("access to [%s, %s) lies outside of arena [%s, %s)", addr, addr.Add(n), a.base, a.End()))
	}

	return addr.Sub(a.base)
}

// Word reads one little-endian machine word at addr
func (a *Arena) Word(addr Address) uintptr {
	offset := a.offset(addr, WordSize)
	if WordSize == 4 {
		return uintptr(binary.LittleEndian.Uint32(a.data[offset:]))
	}

	return uintptr(binary.LittleEndian.Uint64(a.data[offset:]))
}

// PutWord writes one little-endian machine word at addr
func (a *Arena) PutWord(addr Address, value uintptr) {
	offset := a.offset(addr, WordSize)
	if WordSize == 4 {
		binary.LittleEndian.PutUint32(a.data[offset:], uint32(value))
		return
	}

	binary.LittleEndian.PutUint64(a.data[offset:], uint64(value))
}

// Byte reads the byte at addr
func (a *Arena) Byte(addr Address) byte {
	return a.data[a.offset(addr, 1)]
}

// PutByte writes the byte at addr
func (a *Arena) PutByte(addr Address, value byte) {
	a.data[a.offset(addr, 1)] = value
}

// Bytes returns the n bytes starting at addr. The returned slice aliases the arena.
func (a *Arena) Bytes(addr Address, n int) []byte {
	offset := a.offset(addr, n)
	return a.data[offset : offset+n : offset+n]
}
