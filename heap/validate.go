package heap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/kheap/memory"
)

// Validate walks every block in the heap and verifies that the blocks exactly tile the heap region:
// each header lies inside the region, no block runs past the end of the region, and the last block ends
// exactly at the end of the region. Every allocated block must also have a back-reference to its own
// header somewhere in its padding. When the allocator is working correctly it should not be possible for
// this method to return an error.
func (a *Allocator) Validate() error {
	if !a.initialized {
		return ErrNotInitialized
	}

	start, end := a.heapStart(), a.heapEnd()
	if !a.arena.Contains(start, end.Sub(start)) {
		return errors.Newf("heap region [%s, %s) is not covered by the arena", start, end)
	}

	covered := 0
	var last Block
	for block, ok := a.firstBlock(), true; ok; block, ok = block.next() {
		if block.Address() != start.Add(covered) {
			return errors.Newf("block at %s should start at %s", block.Address(), start.Add(covered))
		}
		if !block.Address().IsAligned(uint(memory.WordSize)) {
			return errors.Newf("block at %s is not word aligned", block.Address())
		}
		if block.Address().Add(block.Overhead()) > end {
			return errors.Newf("block at %s does not have room for its header before the end of the heap", block.Address())
		}
		if block.Size() < 0 || block.End() > end {
			return errors.Newf("block at %s has size %d, which runs past the end of the heap at %s", block.Address(), block.Size(), end)
		}
		if !block.IsFree() && !a.hasBackReference(block) {
			return errors.Newf("allocated block at %s has no back-reference to its header", block.Address())
		}

		covered += block.TotalFootprint()
		last = block
	}

	if last.End() != end {
		return errors.Newf("the last block ends at %s, but the heap ends at %s", last.End(), end)
	}
	if covered != end.Sub(start) {
		return errors.Newf("the heap holds %d bytes, but the blocks only added up to %d", end.Sub(start), covered)
	}

	return nil
}

// hasBackReference searches the words between the header and the end of the block for the
// back-reference written by Allocate. Its position depends on the alignment the block was allocated
// with, which the heap does not record.
func (a *Allocator) hasBackReference(block Block) bool {
	for candidate := block.Address().Add(HeaderSize); candidate.Add(BackReferenceSize) <= block.End(); candidate = candidate.Add(memory.WordSize) {
		if memory.Address(a.arena.Word(candidate)) == block.Address() {
			return true
		}
	}

	return false
}
