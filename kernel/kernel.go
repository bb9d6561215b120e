package kernel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/kheap/board"
	"github.com/vkngwrapper/kheap/globals"
	"github.com/vkngwrapper/kheap/heap"
	"github.com/vkngwrapper/kheap/internal/utils"
	"github.com/vkngwrapper/kheap/memory"
)

const (
	asciiBackspace      byte = 8
	asciiLineFeed       byte = 10
	asciiCarriageReturn byte = 13
)

var lineEnding = []byte("\r\n")

// Kernel owns the single heap allocator of the system and the board's console. It is the global
// allocator: every other part of the system allocates through Alloc and Dealloc.
//
// Unlike heap.Allocator, the kernel does not return errors for broken allocation contracts. A zero size,
// an invalid alignment or a foreign pointer is reported on the console and the kernel halts.
type Kernel struct {
	logger *slog.Logger
	board  board.Board
	heap   *heap.Allocator
	halt   func(err error)

	mutex utils.OptionalMutex

	liveAllocations *swiss.Map[memory.Address, int]
}

// New creates a Kernel that manages the heap region described by globals. Init must be called before
// the kernel can allocate.
func New(logger *slog.Logger, globals globals.Globals, arena *memory.Arena, board board.Board, options CreateOptions) (*Kernel, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	allocator, err := heap.New(logger, globals, arena, options.HeapOptions)
	if err != nil {
		return nil, err
	}

	k := &Kernel{
		logger: logger,
		board:  board,
		heap:   allocator,
		halt:   options.Halt,
		mutex: utils.OptionalMutex{
			UseMutex: options.Flags&KernelCreateExternallySynchronized == 0,
		},
	}

	if k.halt == nil {
		k.halt = func(err error) {
			panic(err)
		}
	}

	if options.Flags&KernelCreateTrackAllocations != 0 {
		k.liveAllocations = swiss.NewMap[memory.Address, int](42)
	}

	return k, nil
}

// Heap returns the kernel's allocator. Callers must not use it while the kernel might be in use from
// another execution context.
func (k *Kernel) Heap() *heap.Allocator {
	return k.heap
}

// Init initializes the heap. It must be called once, before the first allocation.
func (k *Kernel) Init() error {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	return k.heap.Init()
}

// Alloc returns the address of size bytes aligned to align, or memory.Null if the heap has no room
func (k *Kernel) Alloc(size int, align uint) memory.Address {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	ptr, err := k.heap.Allocate(size, align)
	if errors.Is(err, heap.ErrOutOfMemory) {
		return memory.Null
	} else if err != nil {
		k.fatal(errors.Wrapf(err, "allocation of %d bytes aligned to %d", size, align))
		return memory.Null
	}

	if k.liveAllocations != nil {
		k.liveAllocations.Put(ptr, size)
	}

	return ptr
}

// Dealloc releases memory returned by Alloc. size and align must be the values passed to Alloc.
func (k *Kernel) Dealloc(ptr memory.Address, size int, align uint) {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if k.liveAllocations != nil {
		liveSize, live := k.liveAllocations.Get(ptr)
		if !live {
			k.fatal(errors.Wrapf(heap.ErrForeignPointer, "%s is not a live allocation", ptr))
			return
		}
		if liveSize != size {
			k.fatal(errors.Newf("%s was allocated with %d bytes but released with %d", ptr, liveSize, size))
			return
		}
	}

	err := k.heap.Deallocate(ptr, size, align)
	if err != nil {
		k.fatal(errors.Wrapf(err, "deallocation of %s", ptr))
		return
	}

	if k.liveAllocations != nil {
		k.liveAllocations.Delete(ptr)
	}
}

// LiveAllocations returns the number of allocations that have not been released. It is only available
// when the kernel was created with KernelCreateTrackAllocations.
func (k *Kernel) LiveAllocations() (int, bool) {
	if k.liveAllocations == nil {
		return 0, false
	}

	k.mutex.Lock()
	defer k.mutex.Unlock()

	return k.liveAllocations.Count(), true
}

// fatal writes err to the console and halts. The mutex must be held.
func (k *Kernel) fatal(err error) {
	k.logger.LogAttrs(context.Background(), slog.LevelError, "Kernel::fatal", slog.Any("error", err))

	// The console is the last resort, so a failed write is ignored
	_, _ = fmt.Fprintf(k.board.UART(), "kernel fatal: %v", err)
	_, _ = k.board.UART().Write(lineEnding)

	k.halt(err)
}

// Print writes msg to the console
func (k *Kernel) Print(msg string) error {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	_, err := io.WriteString(k.board.UART(), msg)
	return err
}

// Println writes msg to the console followed by a carriage return and line feed
func (k *Kernel) Println(msg string) error {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	_, err := io.WriteString(k.board.UART(), msg)
	if err != nil {
		return err
	}

	_, err = k.board.UART().Write(lineEnding)
	return err
}

// Serve echoes everything received by the console back to it until ctx is done. Backspace erases the
// previous character on the terminal, and both carriage return and line feed start a new line.
func (k *Kernel) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		k.mutex.Lock()
		received, ok := k.board.UART().Read()
		k.mutex.Unlock()

		if !ok {
			runtime.Gosched()
			continue
		}

		var err error
		switch received {
		case asciiBackspace:
			err = k.Print(string([]byte{asciiBackspace, ' ', asciiBackspace}))
		case asciiLineFeed, asciiCarriageReturn:
			err = k.Println("")
		default:
			err = k.Print(string([]byte{received}))
		}

		if err != nil {
			return errors.Wrap(err, "console echo failed")
		}
	}
}

// Destroy checks that every allocation has been released. Each unreleased allocation is logged and an
// error is returned. Without KernelCreateTrackAllocations, the heap itself is inspected instead.
func (k *Kernel) Destroy() error {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if k.heap.IsEmpty() {
		return nil
	}

	if k.liveAllocations != nil {
		k.liveAllocations.Iter(func(ptr memory.Address, size int) (stop bool) {
			k.logUnreleasedMemory(ptr, size)
			return false
		})
	} else {
		err := k.heap.VisitAllBlocks(func(address memory.Address, size int, free bool) error {
			if free {
				return nil
			}

			k.logUnreleasedMemory(address, size)
			return nil
		})
		if err != nil {
			k.logger.LogAttrs(context.Background(),
				slog.LevelError,
				"[UNRELEASED MEMORY] error while iterating unreleased memory",
				slog.Any("error", err))
		}
	}

	return errors.New("some allocations were not freed before the destruction of the kernel!")
}

func (k *Kernel) logUnreleasedMemory(address memory.Address, size int) {
	k.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed allocation",
		slog.String("address", address.String()),
		slog.Int("size", size),
	)
}
