//go:build tinygo && riscv64

package globals

import (
	"unsafe"

	"github.com/vkngwrapper/kheap/memory"
)

// These are provided by the linker script. Changes to their names must be synchronized with it.

//go:extern _uart_address
var uartAddressSymbol [0]byte

//go:extern _heap_start
var heapStartSymbol [0]byte

//go:extern _heap_end
var heapEndSymbol [0]byte

// Linker is the Globals implementation backed by linker script symbols
type Linker struct{}

var _ Globals = Linker{}

func (Linker) UARTAddress() memory.Address {
	return memory.Address(uintptr(unsafe.Pointer(&uartAddressSymbol)))
}

func (Linker) HeapStart() memory.Address {
	return memory.Address(uintptr(unsafe.Pointer(&heapStartSymbol)))
}

func (Linker) HeapEnd() memory.Address {
	return memory.Address(uintptr(unsafe.Pointer(&heapEndSymbol)))
}
