package heap

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/kheap/memutils"
)

const (
	blockTypeFree = "FREE"
	blockTypeUsed = "USED"
)

// BlockJsonData populates a json object with summary information about this heap
func (a *Allocator) BlockJsonData(json jwriter.ObjectState) {
	var stats memutils.DetailedStatistics
	stats.Clear()
	a.AddDetailedStatistics(&stats)

	json.Name("HeapStart").String(a.heapStart().String())
	json.Name("HeapEnd").String(a.heapEnd().String())
	json.Name("TotalBytes").Int(stats.BlockBytes)
	json.Name("UnusedBytes").Int(stats.BlockBytes - stats.AllocationBytes - stats.OverheadBytes)
	json.Name("OverheadBytes").Int(stats.OverheadBytes)
	json.Name("Allocations").Int(stats.AllocationCount)
	json.Name("UnusedRanges").Int(stats.UnusedRangeCount)
}

// PrintDetailedMap writes a json object describing the heap and every block in it, in address order
func (a *Allocator) PrintDetailedMap(writer *jwriter.Writer) {
	objState := writer.Object()
	defer objState.End()

	a.BlockJsonData(objState)

	arrayState := objState.Name("Blocks").Array()
	defer arrayState.End()

	a.blocks(func(block Block) {
		a.printDetailedMapBlock(&arrayState, block)
	})
}

func (a *Allocator) printDetailedMapBlock(json *jwriter.ArrayState, block Block) {
	obj := json.Object()
	defer obj.End()

	blockType := blockTypeUsed
	if block.IsFree() {
		blockType = blockTypeFree
	}

	obj.Name("Address").String(block.Address().String())
	obj.Name("Offset").Int(block.Address().Sub(a.heapStart()))
	obj.Name("Type").String(blockType)
	obj.Name("Size").Int(block.Size())
}
