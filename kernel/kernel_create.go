package kernel

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/kheap/heap"
)

// CreateFlags indicate specific kernel behaviors to activate or deactivate
type CreateFlags int32

var kernelCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	kernelCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return kernelCreateFlagsMapping.FlagsToString(f)
}

const (
	// KernelCreateExternallySynchronized ensures that the kernel will not lock around heap and console
	// access. The consumer must guarantee that the kernel is only used from one execution context at a
	// time, which is always the case on a single hart with interrupts disabled.
	KernelCreateExternallySynchronized CreateFlags = 1 << iota
	// KernelCreateTrackAllocations causes the kernel to record every live allocation in a map. Foreign
	// and repeated deallocations are then always caught before they reach the heap, and Destroy reports
	// every allocation that was never released.
	KernelCreateTrackAllocations
)

func init() {
	KernelCreateExternallySynchronized.Register("KernelCreateExternallySynchronized")
	KernelCreateTrackAllocations.Register("KernelCreateTrackAllocations")
}

// CreateOptions contains optional settings when creating a kernel
type CreateOptions struct {
	// Flags indicates specific kernel behaviors to activate or deactivate
	Flags CreateFlags
	// HeapOptions is passed along to the heap allocator
	HeapOptions heap.CreateOptions

	// Halt is called after a fatal error has been written to the console. It should not return; if it
	// does, the operation that failed returns as though it had no effect. When nil, the kernel panics
	// with the error.
	Halt func(err error)
}
