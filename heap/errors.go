package heap

import "github.com/cockroachdb/errors"

var (
	// ErrOutOfMemory indicates that no free block was large enough for a request. The heap is left
	// exactly as it was before the request.
	ErrOutOfMemory = errors.New("heap: no free block large enough")

	// ErrZeroSize indicates a request for zero (or fewer) bytes
	ErrZeroSize = errors.New("heap: requested size must be greater than 0")

	// ErrNotInitialized indicates that the allocator was used before Init was called
	ErrNotInitialized = errors.New("heap: allocator has not been initialized")

	// ErrAlreadyInitialized indicates a second call to Init
	ErrAlreadyInitialized = errors.New("heap: allocator has already been initialized")

	// ErrHeapTooSmall indicates a heap region that cannot hold a single block
	ErrHeapTooSmall = errors.New("heap: region is too small to hold a block")

	// ErrMisalignedHeap indicates a heap region that does not start on a word boundary
	ErrMisalignedHeap = errors.New("heap: region must start on a word boundary")

	// ErrForeignPointer indicates an attempt to deallocate a pointer that was not returned by Allocate,
	// or that has already been deallocated
	ErrForeignPointer = errors.New("heap: pointer was not returned by this allocator")
)
