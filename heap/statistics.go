package heap

import (
	"github.com/vkngwrapper/kheap/memory"
	"github.com/vkngwrapper/kheap/memutils"
)

// VisitAllBlocks calls the provided callback once for each block in the heap, in address order. For
// allocated blocks, size includes any alignment padding before the data. Iteration stops at the first
// error returned by the callback, and that error is returned.
func (a *Allocator) VisitAllBlocks(visit func(address memory.Address, size int, free bool) error) error {
	if !a.initialized {
		return ErrNotInitialized
	}

	for block, ok := a.firstBlock(), true; ok; block, ok = block.next() {
		err := visit(block.Address(), block.Size(), block.IsFree())
		if err != nil {
			return err
		}
	}

	return nil
}

func (a *Allocator) blocks(visit func(block Block)) {
	if !a.initialized {
		return
	}

	for block, ok := a.firstBlock(), true; ok; block, ok = block.next() {
		visit(block)
	}
}

// AllocationCount returns the number of allocated blocks
func (a *Allocator) AllocationCount() int {
	count := 0
	a.blocks(func(block Block) {
		if !block.IsFree() {
			count++
		}
	})
	return count
}

// FreeRegionsCount returns the number of free blocks. Adjacent free blocks are counted separately,
// since they are only merged when the earlier of the two is deallocated.
func (a *Allocator) FreeRegionsCount() int {
	count := 0
	a.blocks(func(block Block) {
		if block.IsFree() {
			count++
		}
	})
	return count
}

// SumFreeSize returns the number of data bytes across all free blocks
func (a *Allocator) SumFreeSize() int {
	sum := 0
	a.blocks(func(block Block) {
		if block.IsFree() {
			sum += block.Size()
		}
	})
	return sum
}

// LargestFreeSize returns the data size of the largest free block, which is the largest request with
// no alignment padding that could currently succeed
func (a *Allocator) LargestFreeSize() int {
	largest := 0
	a.blocks(func(block Block) {
		if block.IsFree() && block.Size() > largest {
			largest = block.Size()
		}
	})
	return largest
}

// IsEmpty will return true if the heap has no live allocations
func (a *Allocator) IsEmpty() bool {
	return a.AllocationCount() == 0
}

// AddStatistics sums this heap's allocation statistics into the statistics currently present in the
// provided memutils.Statistics object.
func (a *Allocator) AddStatistics(stats *memutils.Statistics) {
	stats.BlockCount++
	stats.BlockBytes += a.Size()

	a.blocks(func(block Block) {
		stats.OverheadBytes += block.Overhead()
		if !block.IsFree() {
			stats.AllocationCount++
			stats.AllocationBytes += block.Size()
		}
	})
}

// AddDetailedStatistics sums this heap's allocation statistics into the statistics currently present
// in the provided memutils.DetailedStatistics object.
func (a *Allocator) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	stats.BlockCount++
	stats.BlockBytes += a.Size()

	a.blocks(func(block Block) {
		stats.OverheadBytes += block.Overhead()
		if block.IsFree() {
			stats.AddUnusedRange(block.Size())
		} else {
			stats.AddAllocation(block.Size())
		}
	})
}
