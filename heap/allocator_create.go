package heap

import "github.com/vkngwrapper/core/v2/common"

// CreateFlags indicate specific allocator behaviors to activate or deactivate
type CreateFlags int32

var allocatorCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	allocatorCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return allocatorCreateFlagsMapping.FlagsToString(f)
}

const (
	// AllocatorCreateBackwardCoalescing causes Deallocate to also fold the freed block into the block
	// before it, if that block is free. Finding the previous block requires walking the heap from the
	// start, so deallocation becomes linear in the number of blocks. Without this flag, free blocks are
	// only merged with the free blocks that follow them.
	AllocatorCreateBackwardCoalescing CreateFlags = 1 << iota
)

func init() {
	AllocatorCreateBackwardCoalescing.Register("AllocatorCreateBackwardCoalescing")
}

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// Flags indicates specific allocator behaviors to activate or deactivate
	Flags CreateFlags
}
