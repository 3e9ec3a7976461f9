package sync_test

import (
	"testing"

	syncx "github.com/hbomb79/Siphon/pkg/sync"
	"github.com/stretchr/testify/assert"
)

func TestTypedSyncMap(t *testing.T) {
	m := &syncx.TypedSyncMap[string, int]{}
	m.Store("a", 1)
	m.Store("b", 2)
	assert.Equal(t, 2, m.Len())

	seen := map[string]int{}
	m.Range(func(k string, v int) bool {
		seen[k] = v
		return true
	})
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, seen)

	m.Delete("b")
	m.Delete("b")
	assert.Equal(t, 1, m.Len())

	m.Delete("a")
	assert.Equal(t, 0, m.Len())
}

func TestTypedSyncMap_RangeStopsEarly(t *testing.T) {
	m := &syncx.TypedSyncMap[int, int]{}
	for i := range 10 {
		m.Store(i, i)
	}

	visited := 0
	m.Range(func(int, int) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)
}
