package heap

import "github.com/vkngwrapper/kheap/memory"

const (
	// HeaderSize is the number of bytes occupied by a block header: one word of flags and one word of
	// data size
	HeaderSize = 2 * memory.WordSize
	// BackReferenceSize is the number of bytes occupied by the word stored immediately before an
	// allocation's data, which holds the address of the allocation's header
	BackReferenceSize = memory.WordSize
	// BlockOverhead is the number of bytes every block spends on bookkeeping rather than data
	BlockOverhead = HeaderSize + BackReferenceSize
)

// AllocationSizeParts tracks the various elements that consume memory for each block.
//
// Each property tracks how many bytes that part of the block uses in memory.
type AllocationSizeParts struct {
	// Header is how many bytes the block header takes
	Header int
	// BackReference is how many bytes are reserved for the word, stored just before the data
	// section, that points back at the header so that it can be found again when deallocating
	BackReference int
	// Data is how many bytes were reserved for data
	Data int
}

// TotalSize returns the total number of bytes needed to skip past this block. Added to the block's
// address, it is the address of the next block.
func (p AllocationSizeParts) TotalSize() int {
	return p.Header + p.BackReference + p.Data
}

// HeaderAndBackReferenceSize returns the number of bytes in this block that are not usable data
func (p AllocationSizeParts) HeaderAndBackReferenceSize() int {
	return p.Header + p.BackReference
}
