// Package heap implements the kernel's general purpose memory allocator: a first-fit, in-place
// allocator that manages a single contiguous heap region.
//
// # Layout
//
// Every block of the heap starts with a two word header holding the block's free flag and the number of
// data bytes it holds. Blocks are not linked to one another; the next block always begins immediately
// after the previous block's data, so the heap itself is an address-ordered list:
//
//	| header | padding | back-reference | data ... | header | padding | back-reference | data ... |
//
// When a block is handed out, the word immediately before the data holds the address of the block's
// header. Padding between the header and the back-reference satisfies the requested alignment, and
// because the amount of padding varies, Deallocate follows the back-reference to find the header again.
//
// # Allocation
//
// Allocate walks the blocks from the start of the heap and takes the first free block that can hold
// the request. If the leftover space can hold another block, the leftover is split off into a new free
// block. Deallocate marks the block free and merges it with any free blocks that directly follow it.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access externally; the kernel
// package does this with a single lock held across each call.
package heap
