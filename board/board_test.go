package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/kheap/board"
	"github.com/vkngwrapper/kheap/globals"
	"github.com/vkngwrapper/kheap/memory"
	"github.com/vkngwrapper/kheap/mmio"
)

func TestVirtBoardUART(t *testing.T) {
	registers := memory.NewBufferArena(0x10000000, 8)
	virt := board.NewVirtBoard(mmio.NewArenaBus(registers), globals.Static{UART: registers.Base()})

	// Line control, FIFO control and interrupt enable were programmed
	require.Equal(t, []byte{0, 0b1, 0b111, 0b11}, registers.Bytes(registers.Base(), 4))

	_, err := virt.UART().Write([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, byte('k'), registers.Byte(registers.Base()))

	// The arena echoes back the FIFO control value, whose bit 2 reads as data ready
	b, ok := virt.UART().Read()
	require.True(t, ok)
	require.Equal(t, byte('k'), b)
}
