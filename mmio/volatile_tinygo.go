//go:build tinygo && riscv64

package mmio

import (
	"runtime/volatile"
	"unsafe"

	"github.com/vkngwrapper/kheap/memory"
)

// VolatileBus performs real volatile loads and stores against physical addresses
type VolatileBus struct{}

var _ Bus = VolatileBus{}

func (VolatileBus) Read8(addr memory.Address) uint8 {
	return volatile.LoadUint8((*uint8)(unsafe.Pointer(uintptr(addr))))
}

func (VolatileBus) Write8(addr memory.Address, value uint8) {
	volatile.StoreUint8((*uint8)(unsafe.Pointer(uintptr(addr))), value)
}
