package memutils

import "math"

// Statistics is a running total of the bytes and blocks managed by one or more heaps. Heaps add
// themselves into a Statistics object, so a caller can sum several heaps by reusing one value.
type Statistics struct {
	// BlockCount is the number of heap regions that were summed in
	BlockCount int
	// AllocationCount is the number of live allocations
	AllocationCount int
	// BlockBytes is the total size in bytes of the summed heap regions
	BlockBytes int
	// AllocationBytes is the number of data bytes currently handed out, including alignment padding
	AllocationBytes int
	// OverheadBytes is the number of bytes consumed by block headers and back-references
	OverheadBytes int
}

func (s *Statistics) Clear() {
	s.BlockCount = 0
	s.AllocationCount = 0
	s.BlockBytes = 0
	s.AllocationBytes = 0
	s.OverheadBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.BlockCount += other.BlockCount
	s.AllocationCount += other.AllocationCount
	s.BlockBytes += other.BlockBytes
	s.AllocationBytes += other.AllocationBytes
	s.OverheadBytes += other.OverheadBytes
}

// DetailedStatistics extends Statistics with information about the free ranges of the heap and the
// spread of allocation sizes. Clear must be called before first use so that the minimums start at math.MaxInt.
type DetailedStatistics struct {
	Statistics
	UnusedRangeCount   int
	AllocationSizeMin  int
	AllocationSizeMax  int
	UnusedRangeSizeMin int
	UnusedRangeSizeMax int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.UnusedRangeCount = 0
	s.AllocationSizeMin = math.MaxInt
	s.AllocationSizeMax = 0
	s.UnusedRangeSizeMin = math.MaxInt
	s.UnusedRangeSizeMax = 0
}

func (s *DetailedStatistics) AddUnusedRange(size int) {
	s.UnusedRangeCount++

	if size < s.UnusedRangeSizeMin {
		s.UnusedRangeSizeMin = size
	}

	if size > s.UnusedRangeSizeMax {
		s.UnusedRangeSizeMax = size
	}
}

func (s *DetailedStatistics) AddAllocation(size int) {
	s.AllocationCount++
	s.AllocationBytes += size

	if size < s.AllocationSizeMin {
		s.AllocationSizeMin = size
	}

	if size > s.AllocationSizeMax {
		s.AllocationSizeMax = size
	}
}

// FragmentedBytes returns the number of free bytes that lie outside of the largest free range. A heap
// with a single free range has no fragmented bytes.
func (s *DetailedStatistics) FragmentedBytes() int {
	if s.UnusedRangeCount == 0 {
		return 0
	}

	free := s.BlockBytes - s.AllocationBytes - s.OverheadBytes
	return free - s.UnusedRangeSizeMax
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.UnusedRangeCount += other.UnusedRangeCount

	if other.UnusedRangeSizeMin < s.UnusedRangeSizeMin {
		s.UnusedRangeSizeMin = other.UnusedRangeSizeMin
	}

	if other.UnusedRangeSizeMax > s.UnusedRangeSizeMax {
		s.UnusedRangeSizeMax = other.UnusedRangeSizeMax
	}

	if other.AllocationSizeMin < s.AllocationSizeMin {
		s.AllocationSizeMin = other.AllocationSizeMin
	}

	if other.AllocationSizeMax > s.AllocationSizeMax {
		s.AllocationSizeMax = other.AllocationSizeMax
	}
}
