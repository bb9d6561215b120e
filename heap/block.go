package heap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/kheap/memory"
	"github.com/vkngwrapper/kheap/memutils"
)

const (
	// headerFlagsOffset is the offset of the flags word within a block header
	headerFlagsOffset = 0
	// headerSizeOffset is the offset of the data size word within a block header
	headerSizeOffset = memory.WordSize

	headerFreeFlag uintptr = 1
)

// Block is a view of one block header living in the heap. It holds no state of its own: every
// read and write goes straight to the arena, so two Block values for the same address always agree.
//
// In address order, a block is made up of its header, optional alignment padding, the back-reference
// word, and the data region. The data size recorded in the header includes the alignment padding of
// an allocated block, so the address of the next block can always be derived from the data size alone.
type Block struct {
	arena   *memory.Arena
	address memory.Address
	heapEnd memory.Address
}

func blockAt(arena *memory.Arena, address, heapEnd memory.Address) Block {
	return Block{
		arena:   arena,
		address: address,
		heapEnd: heapEnd,
	}
}

// Address returns the address of the block header
func (b Block) Address() memory.Address { return b.address }

// IsFree returns true if the block is not currently handed out
func (b Block) IsFree() bool {
	return b.arena.Word(b.address.Add(headerFlagsOffset))&headerFreeFlag != 0
}

// Size returns the number of data bytes in the block. It never includes the header or back-reference.
func (b Block) Size() int {
	return int(b.arena.Word(b.address.Add(headerSizeOffset)))
}

func (b Block) setSize(size int) {
	if size < 0 {
		panic(errors.AssertionFailedf("block at %s cannot have a negative size %d", b.address, size))
	}

	b.arena.PutWord(b.address.Add(headerSizeOffset), uintptr(size))
}

func (b Block) writeHeader(isFree bool, size int) {
	b.Mark(isFree)
	b.setSize(size)
}

// SizeParts breaks the block's footprint down into header, back-reference and data bytes
func (b Block) SizeParts() AllocationSizeParts {
	return AllocationSizeParts{
		Header:        HeaderSize,
		BackReference: BackReferenceSize,
		Data:          b.Size(),
	}
}

// TotalFootprint returns the number of bytes between this block's header and the next block's header
func (b Block) TotalFootprint() int {
	return b.SizeParts().TotalSize()
}

// Overhead returns the number of bytes in this block that cannot hold data
func (b Block) Overhead() int {
	return b.SizeParts().HeaderAndBackReferenceSize()
}

// End returns the address one past the last byte of this block
func (b Block) End() memory.Address {
	return b.address.Add(b.TotalFootprint())
}

// NextBlockAddress returns the address of the block that follows this one. The second return value is
// false when this is the last block in the heap.
func (b Block) NextBlockAddress() (memory.Address, bool) {
	next := b.End()
	if next >= b.heapEnd || next < b.address {
		return memory.Null, false
	}

	return next, true
}

func (b Block) next() (Block, bool) {
	address, ok := b.NextBlockAddress()
	if !ok {
		return Block{}, false
	}

	return blockAt(b.arena, address, b.heapEnd), true
}

// DataOffsetForAlignment returns the number of padding bytes that must be placed between the end of the
// header and the back-reference word so that the data region that follows the back-reference starts
// on a multiple of align.
func (b Block) DataOffsetForAlignment(align uint) int {
	memutils.DebugCheckPow2(align, "align")

	unpadded := b.address.Add(HeaderSize + BackReferenceSize)
	return int(memutils.AlignmentPadding(unpadded, align))
}

// BackReferenceAddress returns where the back-reference word goes when this block is allocated with
// the provided alignment
func (b Block) BackReferenceAddress(align uint) memory.Address {
	return b.address.Add(HeaderSize + b.DataOffsetForAlignment(align))
}

// DataAddress returns the address handed to the caller when this block is allocated with the provided
// alignment
func (b Block) DataAddress(align uint) memory.Address {
	return b.BackReferenceAddress(align).Add(BackReferenceSize)
}

// Fits returns true if the block is free and can hold size bytes starting at an address aligned
// to align
func (b Block) Fits(size int, align uint) bool {
	if !b.IsFree() {
		return false
	}

	padding := b.DataOffsetForAlignment(align)
	return padding <= b.Size() && size <= b.Size()-padding
}

// Mark sets the block's free flag. It has no other effect.
func (b Block) Mark(isFree bool) {
	flags := b.arena.Word(b.address.Add(headerFlagsOffset))
	if isFree {
		flags |= headerFreeFlag
	} else {
		flags &^= headerFreeFlag
	}
	b.arena.PutWord(b.address.Add(headerFlagsOffset), flags)
}

// MarkSplit shrinks the block to fit size bytes at the provided alignment, and writes a new free block
// into the bytes left over. After this operation the block will have as little space as possible to fit
// the request.
//
// The split only happens when the leftover bytes can hold a whole block overhead and at least one
// byte of data; otherwise the block is left oversized and the returned bool is false.
func (b Block) MarkSplit(size int, align uint) (Block, bool) {
	padding := b.DataOffsetForAlignment(align)
	currentSize := b.Size()
	if size < 0 || padding > currentSize || size > currentSize-padding {
		panic(errors.AssertionFailedf("block at %s holds %d bytes and cannot be split to reserve %d after %d bytes of padding", b.address, currentSize, size, padding))
	}
	reserved := padding + size

	remaining := currentSize - reserved
	if remaining <= b.Overhead() {
		return Block{}, false
	}

	remainder := blockAt(b.arena, b.address.Add(b.Overhead()+reserved), b.heapEnd)
	remainder.writeHeader(true, remaining-remainder.Overhead())
	b.setSize(reserved)

	return remainder, true
}

// MergeForward folds every free block immediately following this one into this block, stopping at the
// first allocated block or the end of the heap. This block's header never moves; only its size grows.
// It returns the number of blocks that were absorbed.
//
// The block must already be free.
func (b Block) MergeForward() (int, error) {
	if !b.IsFree() {
		return 0, errors.AssertionFailedf("cannot merge into block at %s because it is allocated", b.address)
	}

	merged := 0
	for next, ok := b.next(); ok && next.IsFree(); next, ok = b.next() {
		b.setSize(b.Size() + next.TotalFootprint())
		merged++
	}

	return merged, nil
}
