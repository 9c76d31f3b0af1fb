package logring

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRecent(t *testing.T) {
	r := New(10)

	r.Append(LevelInfo, "first", nil)
	r.Append(LevelSuccess, "second", map[string]any{"k": "v"})

	entries := r.Recent(100)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, "second", entries[1].Message)
	assert.Equal(t, LevelSuccess, entries[1].Level)
	assert.Equal(t, "v", entries[1].Data["k"])
	assert.NotEmpty(t, entries[0].Timestamp)

	// nil data is normalized to an empty map
	assert.NotNil(t, entries[0].Data)
}

func TestCapacityEvictsOldestFirst(t *testing.T) {
	r := New(3)
	for i := 0; i < 5; i++ {
		r.Append(LevelInfo, fmt.Sprintf("msg-%d", i), nil)
	}

	require.Equal(t, 3, r.Len())
	entries := r.Recent(3)
	assert.Equal(t, "msg-2", entries[0].Message)
	assert.Equal(t, "msg-3", entries[1].Message)
	assert.Equal(t, "msg-4", entries[2].Message)
}

func TestDefaultCapacity(t *testing.T) {
	r := New(0)
	for i := 0; i < DefaultCapacity+1; i++ {
		r.Append(LevelInfo, fmt.Sprintf("msg-%d", i), nil)
	}

	require.Equal(t, DefaultCapacity, r.Len())
	entries := r.Recent(1)
	require.Len(t, entries, 1)
	assert.Equal(t, fmt.Sprintf("msg-%d", DefaultCapacity), entries[0].Message)
}

func TestRecentLimitsAndOrder(t *testing.T) {
	r := New(10)
	for i := 0; i < 6; i++ {
		r.Append(LevelInfo, fmt.Sprintf("msg-%d", i), nil)
	}

	entries := r.Recent(2)
	require.Len(t, entries, 2)
	// most recent last
	assert.Equal(t, "msg-4", entries[0].Message)
	assert.Equal(t, "msg-5", entries[1].Message)
}

func TestRecentIsNonDestructive(t *testing.T) {
	r := New(10)
	r.Append(LevelInfo, "a", nil)
	r.Append(LevelInfo, "b", nil)

	first := r.Recent(2)
	second := r.Recent(2)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, r.Len())
}

func TestClear(t *testing.T) {
	r := New(10)
	r.Append(LevelInfo, "a", nil)
	r.Append(LevelError, "b", nil)

	r.Clear()
	assert.Empty(t, r.Recent(10))
	assert.Equal(t, 0, r.Len())
}

func TestConcurrentAppendReadClear(t *testing.T) {
	r := New(50)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Append(LevelInfo, fmt.Sprintf("w%d-%d", n, j), nil)
				r.Recent(10)
				if j%50 == 0 {
					r.Clear()
				}
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, r.Len(), 50)
}
