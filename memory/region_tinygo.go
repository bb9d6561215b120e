//go:build tinygo && riscv64

package memory

import "unsafe"

// Region returns an arena over the raw memory [start, end). The memory must be otherwise unused for as
// long as the arena is alive; on the board this is the heap region reserved by the linker script.
func Region(start, end Address) *Arena {
	data := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(start))), end.Sub(start))
	return NewArena(start, data)
}
