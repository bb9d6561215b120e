package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/kheap/globals"
	"github.com/vkngwrapper/kheap/heap"
	"github.com/vkngwrapper/kheap/memory"
)

type runOptions struct {
	heapSize           int
	heapStart          uint64
	useMmap            bool
	backwardCoalescing bool
}

var runFlags runOptions

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVar(&runFlags.heapSize, "heap-size", 4096, "Size of the heap region in bytes")
	cmd.Flags().Uint64Var(&runFlags.heapStart, "heap-start", 0x80200000, "Address the heap region starts at")
	cmd.Flags().BoolVar(&runFlags.useMmap, "mmap", false, "Map the heap region from the host instead of simulating it at --heap-start")
	cmd.Flags().BoolVar(&runFlags.backwardCoalescing, "backward-coalescing", false, "Merge freed blocks into a free block before them too")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <op>...",
		Short: "Run a sequence of heap operations",
		Long: `The run command initializes a heap and applies each operation in order.
Operations are alloc:<size>[:<align>] and free:#<n>, where n is the number of an
earlier alloc counting from 1. The alignment defaults to 8.

Example:
  heapsim run alloc:32:8 alloc:32:8 free:#1 free:#2 alloc:56:8
  heapsim run --heap-size 256 --backward-coalescing alloc:64 free:#1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.OutOrStdout(), newLogger(), runFlags, args)
		},
	}
	return cmd
}

type simulatedAllocation struct {
	ptr   memory.Address
	size  int
	align uint
	freed bool
}

func runSimulation(out io.Writer, logger *slog.Logger, options runOptions, args []string) error {
	ops := make([]op, 0, len(args))
	for _, arg := range args {
		parsed, err := parseOp(arg)
		if err != nil {
			return err
		}
		ops = append(ops, parsed)
	}

	if options.heapSize <= 0 {
		return errors.Newf("--heap-size must be positive, got %d", options.heapSize)
	}

	var arena *memory.Arena
	if options.useMmap {
		mapped, cleanup, err := memory.MapAnonymous(options.heapSize)
		if err != nil {
			return err
		}
		defer func() {
			_ = cleanup()
		}()
		arena = mapped
	} else {
		arena = memory.NewBufferArena(memory.Address(options.heapStart), options.heapSize)
	}

	var createOptions heap.CreateOptions
	if options.backwardCoalescing {
		createOptions.Flags |= heap.AllocatorCreateBackwardCoalescing
	}

	allocator, err := heap.New(logger, globals.ForArena(memory.Null, arena), arena, createOptions)
	if err != nil {
		return err
	}
	err = allocator.Init()
	if err != nil {
		return err
	}

	var allocations []simulatedAllocation
	for _, operation := range ops {
		switch operation.kind {
		case opAlloc:
			label := len(allocations) + 1
			ptr, err := allocator.Allocate(operation.size, operation.align)
			if errors.Is(err, heap.ErrOutOfMemory) {
				fmt.Fprintf(out, "#%d = alloc(%d, %d) -> out of memory\n", label, operation.size, operation.align)
			} else if err != nil {
				return errors.Wrapf(err, "#%d", label)
			} else {
				fmt.Fprintf(out, "#%d = alloc(%d, %d) -> %s\n", label, operation.size, operation.align, ptr)
			}

			allocations = append(allocations, simulatedAllocation{
				ptr:   ptr,
				size:  operation.size,
				align: operation.align,
				freed: err != nil,
			})
		case opFree:
			if operation.label > len(allocations) {
				return errors.Newf("free(#%d): there is no allocation #%d yet", operation.label, operation.label)
			}

			allocation := &allocations[operation.label-1]
			if allocation.freed {
				return errors.Newf("free(#%d): the allocation is not live", operation.label)
			}

			err := allocator.Deallocate(allocation.ptr, allocation.size, allocation.align)
			if err != nil {
				return errors.Wrapf(err, "free(#%d)", operation.label)
			}
			allocation.freed = true

			fmt.Fprintf(out, "free(#%d)\n", operation.label)
		}
	}

	err = allocator.Validate()
	if err != nil {
		return errors.Wrap(err, "heap is corrupt")
	}

	writer := jwriter.NewWriter()
	allocator.PrintDetailedMap(&writer)
	if err := writer.Error(); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(writer.Bytes()))
	return err
}
