//go:build unix

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSimulationMmap(t *testing.T) {
	var out bytes.Buffer
	err := runSimulation(&out, discardLogger(), runOptions{
		heapSize: 4096,
		useMmap:  true,
	}, []string{"alloc:100:64", "alloc:200", "free:#1"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "free(#1)")
	require.Contains(t, out.String(), `"TotalBytes":4096`)
}
