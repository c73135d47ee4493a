package trie_nats_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_nats"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startEndpoint(t *testing.T) (*trie_nats.Endpoint, *trie_serv.Service) {
	t.Helper()
	cfg := config.Default()
	cfg.NatsPort = -1 // random
	cfg.NatsSubject = "test.trie"

	s, err := trie_serv.New(cfg)
	require.NoError(t, err)
	e, err := trie_nats.Start(s, cfg)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e, s
}

func TestStart_NeedsTarget(t *testing.T) {
	cfg := config.Default()
	s, err := trie_serv.New(cfg)
	require.NoError(t, err)
	_, err = trie_nats.Start(s, cfg)
	assert.ErrorIs(t, err, constant.ErrInvalidConfig)
}

func TestExecOverNATS(t *testing.T) {
	e, s := startEndpoint(t)

	c, err := trie_nats.Dial(e.ClientURL(), "test.trie")
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := c.Exec(ctx, `put 3 "three"`)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	out, err = c.Exec(ctx, "get 3")
	require.NoError(t, err)
	assert.Equal(t, "three", out)

	_, err = c.Exec(ctx, "get 4")
	assert.ErrorContains(t, err, "key not found")

	v, err := s.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "three", v)
}

func TestEventsOverNATS(t *testing.T) {
	e, s := startEndpoint(t)

	c, err := trie_nats.Dial(e.ClientURL(), "test.trie")
	require.NoError(t, err)
	defer c.Close()

	var (
		mu  sync.Mutex
		got []trie_serv.Event
	)
	stop, err := c.Events(func(ev trie_serv.Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer stop()

	s.Put(10, "x")
	_, _ = s.Delete(10)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, trie_serv.OpPut, got[0].Op)
	assert.Equal(t, trie_serv.OpDel, got[1].Op)
}
