package x_trie_test

import (
	"bytes"
	"maps"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/rskv-p/rtrie/pkg/x_trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Scenario64(t *testing.T) {
	m := x_trie.NewMap[uint64, string](x_trie.WithBranching(32))
	for _, k := range []uint64{1, 32, 2, 7, 1128369} {
		_, replaced := m.Insert(k, "v")
		require.False(t, replaced)
	}
	assert.Equal(t, 5, m.Len())

	_, ok := m.Get(32)
	assert.True(t, ok)

	capBefore, usedBefore := m.StorageUtil()
	_, ok = m.Remove(6)
	assert.False(t, ok)
	capAfter, usedAfter := m.StorageUtil()
	assert.Equal(t, capBefore, capAfter)
	assert.Equal(t, usedBefore, usedAfter)
	assert.Equal(t, 5, usedAfter)

	assert.Equal(t, []uint64{1, 2, 7, 32, 1128369}, slices.Collect(m.Keys()))
}

func TestMap_InsertGetRemove(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	m := x_trie.NewMap[int32, int32](x_trie.WithBranching(7))
	want := map[int32]int32{}
	for len(want) < 500 {
		k := r.Int32() - (1 << 30)
		want[k] = k / 3
	}

	for k, v := range want {
		_, used := m.StorageUtil()
		_, replaced := m.Insert(k, v)
		require.False(t, replaced)
		_, usedNow := m.StorageUtil()
		require.Equal(t, used+1, usedNow)
	}
	require.Equal(t, len(want), m.Len())

	for k, v := range want {
		got, ok := m.Get(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}

	for k, v := range want {
		_, used := m.StorageUtil()
		e, ok := m.Remove(k)
		require.True(t, ok)
		require.Equal(t, k, e.Key)
		require.Equal(t, v, e.Value)
		_, usedNow := m.StorageUtil()
		require.Equal(t, used-1, usedNow)

		_, ok = m.Get(k)
		require.False(t, ok)
	}
	assert.Zero(t, m.Len())
}

func TestMap_ReplaceKeepsCount(t *testing.T) {
	m := x_trie.NewMap[uint16, string]()
	m.Insert(5, "a")
	_, used := m.StorageUtil()

	prev, replaced := m.Insert(5, "b")
	assert.True(t, replaced)
	assert.Equal(t, "a", prev.Value)

	_, usedNow := m.StorageUtil()
	assert.Equal(t, used, usedNow)
	assert.Equal(t, 1, m.Len())

	v, _ := m.Get(5)
	assert.Equal(t, "b", v)
}

func TestMap_Pointers(t *testing.T) {
	m := x_trie.NewMap[int64, int]()
	m.Insert(-5, 1)
	m.Insert(10, 2)
	m.Insert(3, 3)

	*m.GetPtr(3) += 10
	v, _ := m.Get(3)
	assert.Equal(t, 13, v)
	assert.Nil(t, m.GetPtr(4))

	k, p, ok := m.FirstPtr()
	require.True(t, ok)
	assert.Equal(t, int64(-5), k)
	*p = 100

	k, p, ok = m.LastPtr()
	require.True(t, ok)
	assert.Equal(t, int64(10), k)
	*p = 200

	assert.Equal(t, "map[-5:100 3:13 10:200]", m.String())
}

func TestMap_FirstLast(t *testing.T) {
	m := x_trie.NewMap[int16, string](x_trie.WithBranching(4))

	_, _, ok := m.First()
	assert.False(t, ok)
	_, _, ok = m.Last()
	assert.False(t, ok)

	m.Insert(42, "x")
	fk, fv, ok := m.First()
	require.True(t, ok)
	lk, lv, _ := m.Last()
	assert.Equal(t, fk, lk)
	assert.Equal(t, fv, lv)

	m.Insert(-32768, "min")
	m.Insert(32767, "max")
	fk, _, _ = m.First()
	lk, _, _ = m.Last()
	assert.Equal(t, int16(-32768), fk)
	assert.Equal(t, int16(32767), lk)
}

func TestMap_StumpsAreInvisible(t *testing.T) {
	for _, prune := range []bool{false, true} {
		m := x_trie.NewMap[uint32, int](x_trie.WithBranching(16), x_trie.WithPruning(prune))
		for k := uint32(0); k < 1000; k += 3 {
			m.Insert(k, int(k))
		}
		for k := uint32(0); k < 900; k += 3 {
			m.Remove(k)
		}

		k, _, ok := m.First()
		require.True(t, ok)
		assert.Equal(t, uint32(900), k, "prune=%v", prune)

		for k := uint32(900); k < 1000; k += 3 {
			m.Remove(k)
		}
		_, _, ok = m.First()
		assert.False(t, ok)
		_, _, ok = m.Iter().Next()
		assert.False(t, ok)
		_, _, ok = m.Iter().NextBack()
		assert.False(t, ok)

		capacity, used := m.StorageUtil()
		assert.Zero(t, used)
		if prune {
			assert.Zero(t, capacity)
			assert.Zero(t, m.Storage())
		} else {
			assert.Positive(t, capacity)
		}
	}
}

func TestMap_Storage(t *testing.T) {
	m := x_trie.NewMap[uint8, struct{}](x_trie.WithBranching(16))
	assert.Zero(t, m.Storage())

	for k := 0; k < 8; k++ {
		m.Insert(uint8(k), struct{}{})
	}
	assert.InDelta(t, 0.5, m.Storage(), 1e-9)

	for k := 8; k < 16; k++ {
		m.Insert(uint8(k), struct{}{})
	}
	assert.InDelta(t, 1.0, m.Storage(), 1e-9)
	assert.Positive(t, m.StorageBytes())
}

func TestMap_SingleLevel(t *testing.T) {
	// 8-bit keys with 256 slots fit in one leaf root
	m := x_trie.NewMap[uint8, int](x_trie.WithBranching(256))
	require.Equal(t, 0, m.MaxDepth())
	for k := 255; k >= 0; k-- {
		m.Insert(uint8(k), k)
	}
	keys := slices.Collect(m.Keys())
	require.Len(t, keys, 256)
	assert.True(t, slices.IsSorted(keys))

	it := m.Iter()
	k, _, _ := it.NextBack()
	assert.Equal(t, uint8(255), k)
	k, _, _ = it.Next()
	assert.Equal(t, uint8(0), k)
}

func TestMap_FromAndExtend(t *testing.T) {
	src := map[uint32]string{3: "c", 1: "a", 2: "b"}
	m := x_trie.MapFrom(maps.All(src), x_trie.WithBranching(10))
	assert.Equal(t, "map[1:a 2:b 3:c]", m.String())

	m.Extend(maps.All(map[uint32]string{0: "z", 3: "C"}))
	assert.Equal(t, "map[0:z 1:a 2:b 3:C]", m.String())

	m.Clear()
	assert.Zero(t, m.Len())
	assert.Equal(t, "map[]", m.String())
}

func TestMap_Dump(t *testing.T) {
	m := x_trie.NewMap[uint16, string](x_trie.WithBranching(16))
	m.Insert(0x0012, "a")
	m.Insert(0x0013, "b")
	m.Remove(0x0012)
	m.Remove(0x0013)
	m.Insert(0x1000, "c")

	var buf bytes.Buffer
	m.Dump(&buf)
	out := buf.String()
	assert.Contains(t, out, "bf=16 depth=3 len=1")
	assert.Contains(t, out, "STUMP")
	assert.Contains(t, out, "4096: c")
}

func TestSet(t *testing.T) {
	s := x_trie.SetFrom(slices.Values([]int{5, -1, 3, 5}), x_trie.WithBranching(8))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "set[-1 3 5]", s.String())

	_, existed := s.Insert(3)
	assert.True(t, existed)
	assert.True(t, s.Contains(-1))

	k, ok := s.Get(5)
	assert.True(t, ok)
	assert.Equal(t, 5, k)
	_, ok = s.Get(4)
	assert.False(t, ok)

	first, _ := s.First()
	last, _ := s.Last()
	assert.Equal(t, -1, first)
	assert.Equal(t, 5, last)

	_, ok = s.Remove(-1)
	assert.True(t, ok)
	_, ok = s.Remove(-1)
	assert.False(t, ok)

	assert.Equal(t, []int{5, 3}, slices.Collect(s.Backward()))
}
