//go:build tinygo && riscv64

// Command kernel is the entry point of the kernel on the QEMU RISC-V virt machine. It brings up the
// heap and the console, greets, and then echoes everything typed on the console.
//
// Build with TinyGo for the riscv64 target. The kernel package brings cockroachdb/errors along with its
// sentry-go and gogo/protobuf dependencies, and those have not been linked against a bare-metal TinyGo
// runtime. Allocation tracking (dolthub/swiss) is left off here, so only the heap, console and error
// paths are needed on the board.
package main

import (
	"context"

	"github.com/vkngwrapper/kheap/board"
	"github.com/vkngwrapper/kheap/globals"
	"github.com/vkngwrapper/kheap/kernel"
	"github.com/vkngwrapper/kheap/memory"
	"github.com/vkngwrapper/kheap/mmio"
)

func main() {
	linker := globals.Linker{}
	virt := board.NewVirtBoard(mmio.VolatileBus{}, linker)

	// There is one hart and no interrupt handler touches the heap
	k, err := kernel.New(nil, linker, memory.Region(linker.HeapStart(), linker.HeapEnd()), virt, kernel.CreateOptions{
		Flags: kernel.KernelCreateExternallySynchronized,
	})
	if err != nil {
		panic(err)
	}

	err = k.Init()
	if err != nil {
		panic(err)
	}

	_ = k.Println("Hello, World!")
	err = k.Serve(context.Background())
	if err != nil {
		panic(err)
	}
}
