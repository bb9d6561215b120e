// Package mmio gives device drivers access to memory-mapped registers. Drivers only see the Bus
// interface, so they can be driven by real volatile loads and stores on the board, by an arena in a
// simulation, or by a mock in tests.
package mmio

//go:generate mockgen -source mmio.go -destination ./mocks/mocks.go -package mock_mmio

import "github.com/vkngwrapper/kheap/memory"

// Bus reads and writes 8-bit device registers. Every call must reach the device: implementations may
// not cache, merge or reorder accesses.
type Bus interface {
	Read8(addr memory.Address) uint8
	Write8(addr memory.Address, value uint8)
}

// ArenaBus is a Bus whose registers are plain bytes in an arena. Values written are read back unchanged,
// which is enough to observe what a driver wrote but not to simulate a device's response.
type ArenaBus struct {
	arena *memory.Arena
}

var _ Bus = &ArenaBus{}

func NewArenaBus(arena *memory.Arena) *ArenaBus {
	return &ArenaBus{arena: arena}
}

func (b *ArenaBus) Read8(addr memory.Address) uint8 {
	return b.arena.Byte(addr)
}

func (b *ArenaBus) Write8(addr memory.Address, value uint8) {
	b.arena.PutByte(addr, value)
}
