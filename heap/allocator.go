package heap

import (
	"context"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/kheap/globals"
	"github.com/vkngwrapper/kheap/memory"
	"github.com/vkngwrapper/kheap/memutils"
)

// Allocator is a first-fit allocator that manages the heap region described by a globals.Globals in
// place: every block of the region begins with a header, and the headers form an implicit list ordered
// by address. Apart from whether Init has been called, the Allocator keeps no state of its own.
//
// Allocator is not safe for concurrent use. Callers that can reach it from more than one execution
// context must hold a single lock for the duration of each call.
type Allocator struct {
	logger  *slog.Logger
	globals globals.Globals
	arena   *memory.Arena
	flags   CreateFlags

	initialized bool
}

var _ memutils.Validatable = &Allocator{}

// New creates an Allocator for the heap region of the provided globals. The arena must cover the whole
// region. Init must be called before the allocator is used.
func New(logger *slog.Logger, globals globals.Globals, arena *memory.Arena, options CreateOptions) (*Allocator, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	start, end := globals.HeapStart(), globals.HeapEnd()
	if end <= start {
		return nil, errors.Newf("heap end %s must be greater than heap start %s", end, start)
	}

	err := arena.CheckRange(start, end.Sub(start))
	if err != nil {
		return nil, errors.Wrap(err, "the arena does not cover the heap region")
	}

	return &Allocator{
		logger:  logger,
		globals: globals,
		arena:   arena,
		flags:   options.Flags,
	}, nil
}

func (a *Allocator) heapStart() memory.Address { return a.globals.HeapStart() }
func (a *Allocator) heapEnd() memory.Address   { return a.globals.HeapEnd() }

func (a *Allocator) firstBlock() Block {
	return blockAt(a.arena, a.heapStart(), a.heapEnd())
}

// Size returns the number of bytes in the heap region
func (a *Allocator) Size() int {
	return a.heapEnd().Sub(a.heapStart())
}

// Init carves the whole heap region into a single free block. It must be called exactly once, before
// any call to Allocate or Deallocate.
//
// The first block's data size is the region size minus BlockOverhead, so a 256 byte heap starts out
// as one free block of 232 bytes.
func (a *Allocator) Init() error {
	if a.initialized {
		return ErrAlreadyInitialized
	}

	err := a.writeInitialBlock()
	if err != nil {
		return err
	}

	a.initialized = true
	memutils.DebugValidate(a)

	return nil
}

// Reset instantly frees all allocations by rewriting the heap as a single free block. Pointers handed
// out before the reset must not be used or deallocated afterward.
func (a *Allocator) Reset() error {
	if !a.initialized {
		return ErrNotInitialized
	}

	err := a.writeInitialBlock()
	if err != nil {
		return err
	}

	memutils.DebugValidate(a)
	return nil
}

func (a *Allocator) writeInitialBlock() error {
	start := a.heapStart()
	if !start.IsAligned(uint(memory.WordSize)) {
		return errors.Wrapf(ErrMisalignedHeap, "heap start %s", start)
	}

	regionSize := a.Size()
	if regionSize < BlockOverhead+memory.WordSize {
		return errors.Wrapf(ErrHeapTooSmall, "the region holds %d bytes but a block needs at least %d", regionSize, BlockOverhead+memory.WordSize)
	}

	// The first block's back-reference is reserved up front so that its footprint ends exactly at the
	// end of the heap.
	block := a.firstBlock()
	block.writeHeader(true, regionSize-block.Overhead())

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "Heap::Init",
		slog.String("HeapStart", start.String()),
		slog.String("HeapEnd", a.heapEnd().String()),
		slog.Int("FreeBytes", block.Size()),
	)

	return nil
}

// Allocate reserves size bytes whose first byte is aligned to align, which must be a power of two.
// It returns the address of the first byte.
//
// When no free block can hold the request, it returns memory.Null and an error wrapping ErrOutOfMemory,
// and the heap is left unchanged. Any other error indicates the caller broke the allocator's contract.
func (a *Allocator) Allocate(size int, align uint) (memory.Address, error) {
	if !a.initialized {
		return memory.Null, ErrNotInitialized
	}
	if size <= 0 {
		return memory.Null, errors.Wrapf(ErrZeroSize, "requested %d bytes", size)
	}
	err := memutils.CheckPow2(align, "align")
	if err != nil {
		return memory.Null, err
	}

	// No block can ever hold more than the heap minus one block's overhead. Rejecting larger requests
	// up front also keeps the size arithmetic below from overflowing.
	if size > memutils.AlignDown(a.Size()-BlockOverhead, uint(memory.WordSize)) {
		return memory.Null, a.outOfMemory(size, align)
	}

	// Keeping every data size a whole number of words keeps every header word aligned
	size = memutils.AlignUp(size, uint(memory.WordSize))

	block, found := a.findFirstFit(size, align)
	if !found {
		return memory.Null, a.outOfMemory(size, align)
	}

	remainder, split := block.MarkSplit(size, align)
	block.Mark(false)

	backReference := block.BackReferenceAddress(align)
	a.arena.PutWord(backReference, uintptr(block.Address()))
	data := backReference.Add(BackReferenceSize)

	if split {
		a.logger.LogAttrs(context.Background(), slog.LevelDebug, "Heap::Allocate split block",
			slog.String("Block", block.Address().String()),
			slog.String("Remainder", remainder.Address().String()),
			slog.Int("RemainderSize", remainder.Size()),
		)
	}

	memutils.DebugValidate(a)
	return data, nil
}

func (a *Allocator) outOfMemory(size int, align uint) error {
	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "Heap::Allocate out of memory",
		slog.Int("Size", size),
		slog.Uint64("Align", uint64(align)),
	)
	return errors.Wrapf(ErrOutOfMemory, "no free block can hold %d bytes aligned to %d", size, align)
}

func (a *Allocator) findFirstFit(size int, align uint) (Block, bool) {
	for block, ok := a.firstBlock(), true; ok; block, ok = block.next() {
		if block.Fits(size, align) {
			return block, true
		}
	}

	return Block{}, false
}

// Deallocate returns the memory at ptr, which must have been returned by Allocate, to the heap. size
// and align should be the values passed to Allocate; a size of 0 skips the size check. The freed block
// is merged with any free blocks that immediately follow it. Freed memory is not zeroed.
//
// An error wrapping ErrForeignPointer is returned when ptr can be shown not to belong to a live
// allocation. Not every foreign pointer can be detected.
func (a *Allocator) Deallocate(ptr memory.Address, size int, align uint) error {
	if !a.initialized {
		return ErrNotInitialized
	}

	block, err := a.blockForData(ptr, size, align)
	if err != nil {
		return err
	}

	block.Mark(true)
	merged, err := block.MergeForward()
	if err != nil {
		return err
	}

	if a.flags&AllocatorCreateBackwardCoalescing != 0 {
		previous, found := a.previousBlock(block)
		if found && previous.IsFree() {
			absorbed, err := previous.MergeForward()
			if err != nil {
				return err
			}
			merged += absorbed
			block = previous
		}
	}

	if merged > 0 {
		a.logger.LogAttrs(context.Background(), slog.LevelDebug, "Heap::Deallocate merged blocks",
			slog.String("Block", block.Address().String()),
			slog.Int("Merged", merged),
			slog.Int("Size", block.Size()),
		)
	}

	memutils.DebugValidate(a)
	return nil
}

// blockForData follows the back-reference stored just before ptr to its block header, and checks
// that the header it finds plausibly owns ptr.
func (a *Allocator) blockForData(ptr memory.Address, size int, align uint) (Block, error) {
	start, end := a.heapStart(), a.heapEnd()

	backReference := ptr.Add(-BackReferenceSize)
	if ptr < start.Add(BlockOverhead) || ptr > end || !backReference.IsAligned(uint(memory.WordSize)) {
		return Block{}, errors.Wrapf(ErrForeignPointer, "%s does not lie in the heap [%s, %s)", ptr, start, end)
	}
	if align != 0 && !ptr.IsAligned(align) {
		return Block{}, errors.Wrapf(ErrForeignPointer, "%s is not aligned to %d", ptr, align)
	}

	header := memory.Address(a.arena.Word(backReference))
	if header < start || header.Add(HeaderSize) > backReference || !header.IsAligned(uint(memory.WordSize)) {
		return Block{}, errors.Wrapf(ErrForeignPointer, "%s has a back-reference to %s, which is not a block header", ptr, header)
	}

	block := blockAt(a.arena, header, end)
	if block.IsFree() {
		return Block{}, errors.Wrapf(ErrForeignPointer, "%s belongs to the block at %s, which is already free", ptr, header)
	}

	if align != 0 && block.DataAddress(align) != ptr {
		return Block{}, errors.Wrapf(ErrForeignPointer, "the block at %s would place data aligned to %d at %s, not %s", header, align, block.DataAddress(align), ptr)
	}

	blockEnd := block.End()
	if blockEnd > end || blockEnd < header || max(size, 1) > blockEnd.Sub(ptr) {
		return Block{}, errors.Wrapf(ErrForeignPointer, "%s does not fit %d bytes inside the block at %s", ptr, size, header)
	}

	return block, nil
}

func (a *Allocator) previousBlock(target Block) (Block, bool) {
	var previous Block
	found := false

	for block, ok := a.firstBlock(), true; ok; block, ok = block.next() {
		if block.Address() == target.Address() {
			return previous, found
		}

		previous = block
		found = true
	}

	return Block{}, false
}
