package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/kheap/heap"
	"github.com/vkngwrapper/kheap/memutils"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseOp(t *testing.T) {
	parsed, err := parseOp("alloc:32:16")
	require.NoError(t, err)
	require.Equal(t, op{kind: opAlloc, size: 32, align: 16}, parsed)

	parsed, err = parseOp("alloc:40")
	require.NoError(t, err)
	require.Equal(t, op{kind: opAlloc, size: 40, align: 8}, parsed)

	parsed, err = parseOp("free:#3")
	require.NoError(t, err)
	require.Equal(t, op{kind: opFree, label: 3}, parsed)

	for _, bad := range []string{"alloc", "alloc:x", "alloc:8:-1", "free:3", "free:#0", "realloc:8"} {
		_, err = parseOp(bad)
		require.Error(t, err, bad)
	}
}

func TestRunSimulation(t *testing.T) {
	var out bytes.Buffer
	err := runSimulation(&out, discardLogger(), runOptions{
		heapSize:  256,
		heapStart: 0x80200000,
	}, []string{"alloc:32:8", "alloc:32:8", "free:#1", "free:#2", "alloc:56:8"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{
		"#1 = alloc(32, 8) -> 0x80200018",
		"#2 = alloc(32, 8) -> 0x80200050",
		"free(#1)",
		"free(#2)",
		"#3 = alloc(56, 8) -> 0x80200050",
	}, lines[:5])
	require.Len(t, lines, 6)

	require.JSONEq(t, `{
		"HeapStart": "0x80200000",
		"HeapEnd": "0x80200100",
		"TotalBytes": 256,
		"UnusedBytes": 128,
		"OverheadBytes": 72,
		"Allocations": 1,
		"UnusedRanges": 2,
		"Blocks": [
			{"Address": "0x80200000", "Offset": 0, "Type": "FREE", "Size": 32},
			{"Address": "0x80200038", "Offset": 56, "Type": "USED", "Size": 56},
			{"Address": "0x80200088", "Offset": 136, "Type": "FREE", "Size": 96}
		]
	}`, lines[5])
}

func TestRunSimulationOutOfMemory(t *testing.T) {
	var out bytes.Buffer
	err := runSimulation(&out, discardLogger(), runOptions{
		heapSize:  256,
		heapStart: 0x80200000,
	}, []string{"alloc:512", "free:#1"})
	require.Error(t, err)
	require.Contains(t, out.String(), "#1 = alloc(512, 8) -> out of memory")
}

func TestRunSimulationContractViolations(t *testing.T) {
	options := runOptions{heapSize: 256, heapStart: 0x80200000}

	err := runSimulation(io.Discard, discardLogger(), options, []string{"alloc:8:3"})
	require.ErrorIs(t, err, memutils.PowerOfTwoError)

	err = runSimulation(io.Discard, discardLogger(), options, []string{"alloc:0"})
	require.ErrorIs(t, err, heap.ErrZeroSize)

	err = runSimulation(io.Discard, discardLogger(), options, []string{"alloc:8", "free:#1", "free:#1"})
	require.Error(t, err)

	err = runSimulation(io.Discard, discardLogger(), options, []string{"free:#1"})
	require.Error(t, err)

	err = runSimulation(io.Discard, discardLogger(), runOptions{heapSize: 16, heapStart: 0x80200000}, []string{"alloc:8"})
	require.ErrorIs(t, err, heap.ErrHeapTooSmall)
}

func TestRunSimulationBackwardCoalescing(t *testing.T) {
	var out bytes.Buffer
	err := runSimulation(&out, discardLogger(), runOptions{
		heapSize:           256,
		heapStart:          0x80200000,
		backwardCoalescing: true,
	}, []string{"alloc:32", "alloc:32", "free:#1", "free:#2"})
	require.NoError(t, err)
	require.Contains(t, out.String(), `"UnusedRanges":1`)
}
