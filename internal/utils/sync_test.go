package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalMutex(t *testing.T) {
	mutex := OptionalMutex{UseMutex: true}

	mutex.Lock()
	require.False(t, mutex.Mutex.TryLock())
	mutex.Unlock()

	require.True(t, mutex.Mutex.TryLock())
	mutex.Mutex.Unlock()
}

func TestOptionalMutexDisabled(t *testing.T) {
	var mutex OptionalMutex

	mutex.Lock()
	mutex.Lock()
	require.True(t, mutex.Mutex.TryLock())
	mutex.Mutex.Unlock()
	mutex.Unlock()
	mutex.Unlock()
}
