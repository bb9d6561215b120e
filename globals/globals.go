// Package globals provides indirect access to the fixed addresses that the kernel is linked against.
// On the board these come from the linker script; everywhere else a Static value stands in for them,
// which is how the heap allocator is exercised without real hardware addresses.
package globals

//go:generate mockgen -source globals.go -destination ./mocks/mocks.go -package mock_globals

import "github.com/vkngwrapper/kheap/memory"

// Globals exposes the three addresses the kernel needs from its environment. Each method must return
// the same value for the lifetime of the process and must not have side effects.
type Globals interface {
	// UARTAddress is the base address of the UART's memory-mapped registers
	UARTAddress() memory.Address
	// HeapStart is the inclusive lower bound of the heap region
	HeapStart() memory.Address
	// HeapEnd is the exclusive upper bound of the heap region
	HeapEnd() memory.Address
}

// Static is a Globals implementation holding fixed values
type Static struct {
	UART  memory.Address
	Start memory.Address
	End   memory.Address
}

var _ Globals = Static{}

// ForArena returns a Static whose heap region covers the whole arena
func ForArena(uart memory.Address, arena *memory.Arena) Static {
	return Static{
		UART:  uart,
		Start: arena.Base(),
		End:   arena.End(),
	}
}

func (s Static) UARTAddress() memory.Address { return s.UART }
func (s Static) HeapStart() memory.Address   { return s.Start }
func (s Static) HeapEnd() memory.Address     { return s.End }
