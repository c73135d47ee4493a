package trie_serv_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, bf int, prune bool) *trie_serv.Service {
	t.Helper()
	cfg := config.Default()
	cfg.Branching = bf
	cfg.Prune = prune
	s, err := trie_serv.New(cfg)
	require.NoError(t, err)
	return s
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Branching = 1
	_, err := trie_serv.New(cfg)
	assert.ErrorIs(t, err, constant.ErrInvalidConfig)

	s, err := trie_serv.New(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID())
}

func TestService_PutGetDelete(t *testing.T) {
	s := newService(t, 16, false)

	_, replaced := s.Put(-4, "a")
	assert.False(t, replaced)
	prev, replaced := s.Put(-4, "b")
	assert.True(t, replaced)
	assert.Equal(t, "a", prev)

	v, err := s.Get(-4)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = s.Get(99)
	assert.ErrorIs(t, err, constant.ErrNotFound)

	v, err = s.Delete(-4)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	_, err = s.Delete(-4)
	assert.ErrorIs(t, err, constant.ErrNotFound)

	m := s.Metrics()
	assert.Equal(t, int64(2), m[constant.MetricPuts])
	assert.Equal(t, int64(1), m[constant.MetricReplaces])
	assert.Equal(t, int64(1), m[constant.MetricDeletes])
	assert.Equal(t, int64(2), m[constant.MetricMisses])

	s.ResetMetrics()
	assert.Empty(t, s.Metrics())
}

func TestService_FirstLastRange(t *testing.T) {
	s := newService(t, 5, true)

	_, err := s.First()
	assert.ErrorIs(t, err, constant.ErrNotFound)
	_, err = s.Last()
	assert.ErrorIs(t, err, constant.ErrNotFound)

	for _, k := range []int64{30, -10, 0, 20, 10} {
		s.Put(k, fmt.Sprint(k))
	}
	first, err := s.First()
	require.NoError(t, err)
	assert.Equal(t, codec.Entry{Key: -10, Value: "-10"}, first)
	last, err := s.Last()
	require.NoError(t, err)
	assert.Equal(t, int64(30), last.Key)

	keys := func(es []codec.Entry) []int64 {
		out := make([]int64, len(es))
		for i, e := range es {
			out[i] = e.Key
		}
		return out
	}
	assert.Equal(t, []int64{-10, 0, 10, 20, 30}, keys(s.Range(false, 0)))
	assert.Equal(t, []int64{30, 20}, keys(s.Range(true, 2)))
	assert.Equal(t, []int64{-10}, keys(s.Range(false, 1)))

	front, back := s.Ends(3)
	assert.Equal(t, []int64{-10, 0, 10}, keys(front))
	assert.Equal(t, []int64{30, 20}, keys(back))
}

func TestService_Stats(t *testing.T) {
	s := newService(t, 16, false)
	st := s.Stats()
	assert.Equal(t, 16, st.Branching)
	assert.Equal(t, 15, st.MaxDepth)
	assert.Zero(t, st.Len)
	assert.Zero(t, st.Storage)

	for k := int64(0); k < 16; k++ {
		s.Put(k, "x")
	}
	st = s.Stats()
	assert.Equal(t, 16, st.Len)
	assert.Equal(t, 16, st.Capacity)
	assert.Equal(t, 16, st.Occupied)
	assert.InDelta(t, 1.0, st.Storage, 1e-9)
	assert.Positive(t, st.StorageBytes)
	assert.Equal(t, s.ID(), st.Session)
	assert.Equal(t, int64(16), st.Metrics[constant.MetricPuts])
}

func TestService_Dump(t *testing.T) {
	s := newService(t, 16, false)
	s.Put(7, "seven")
	var b strings.Builder
	s.Dump(&b)
	assert.Contains(t, b.String(), "7: seven")
}

func TestService_Concurrent(t *testing.T) {
	s := newService(t, 32, false)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := int64(w*1000 + i)
				s.Put(k, "v")
				_, _ = s.Get(k)
				_ = s.Range(i%2 == 0, 5)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 1600, s.Stats().Len)
	assert.Len(t, s.Range(false, 0), 1600)
}
