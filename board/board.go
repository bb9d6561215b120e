// Package board describes the machine the kernel runs on
package board

import (
	"github.com/vkngwrapper/kheap/globals"
	"github.com/vkngwrapper/kheap/mmio"
	"github.com/vkngwrapper/kheap/uart"
)

// Board exposes the devices every supported machine is expected to have
type Board interface {
	UART() uart.UART
}

// VirtBoard is the QEMU RISC-V virt machine. Its UART is an NS16550 at the address provided by the
// linker script: https://www.qemu.org/docs/master/system/riscv/virt.html
type VirtBoard struct {
	uart *uart.NS16550
}

var _ Board = &VirtBoard{}

// NewVirtBoard initializes the board's devices
func NewVirtBoard(bus mmio.Bus, globals globals.Globals) *VirtBoard {
	return &VirtBoard{
		uart: uart.NewNS16550(bus, globals.UARTAddress()),
	}
}

func (b *VirtBoard) UART() uart.UART {
	return b.uart
}
