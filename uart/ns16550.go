package uart

import (
	"github.com/vkngwrapper/kheap/memory"
	"github.com/vkngwrapper/kheap/mmio"
)

// Register offsets from the base address of an NS16550. Some offsets name two registers: one that is
// read and one that is written.
const (
	// thrRHROffset is the transmit holding register when written and the receive holding register when read
	thrRHROffset = 0
	ierOffset    = 1
	// fcrISROffset is the FIFO control register when written and the interrupt status register when read
	fcrISROffset = 2
	lcrOffset    = 3
)

const (
	lcrEightBitWords    uint8 = 0b11
	fcrEnableAndReset   uint8 = 0b111
	ierReceivedData     uint8 = 0b1
	isrReceivedDataMask uint8 = 0b0100
)

// NS16550 drives the 16550-compatible UART found on the QEMU virt machine
type NS16550 struct {
	bus  mmio.Bus
	base memory.Address
}

var _ UART = &NS16550{}

// NewNS16550 programs the UART at base for 8-bit words, enables and clears both FIFOs, and enables the
// received-data interrupt.
func NewNS16550(bus mmio.Bus, base memory.Address) *NS16550 {
	bus.Write8(base.Add(lcrOffset), lcrEightBitWords)
	bus.Write8(base.Add(fcrISROffset), fcrEnableAndReset)
	bus.Write8(base.Add(ierOffset), ierReceivedData)

	return &NS16550{
		bus:  bus,
		base: base,
	}
}

func (u *NS16550) Write(p []byte) (int, error) {
	for _, b := range p {
		u.bus.Write8(u.base.Add(thrRHROffset), b)
	}

	return len(p), nil
}

func (u *NS16550) Read() (byte, bool) {
	status := u.bus.Read8(u.base.Add(fcrISROffset))
	if status&isrReceivedDataMask != isrReceivedDataMask {
		return 0, false
	}

	return u.bus.Read8(u.base.Add(thrRHROffset)), true
}
