// file: rtrie/servs/s_trie/trie_serv/service.go
package trie_serv

import (
	"fmt"
	"io"
	"sync"

	"github.com/nats-io/nuid"
	"github.com/rs/zerolog"
	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/pkg/x_log"
	"github.com/rskv-p/rtrie/pkg/x_trie"
)

// Service exposes one int64 keyed trie to concurrent callers.
type Service struct {
	mu   sync.RWMutex
	trie *x_trie.Map[int64, string]
	seq  uint64 // last event sequence, guarded by mu

	cfg config.Config
	id  string
	log zerolog.Logger

	metricsMu sync.Mutex
	metrics   map[string]int64

	watchMu   sync.Mutex
	watchers  map[uint64]func(Event)
	nextWatch uint64
}

// Stats is a point-in-time view of the trie and the service counters.
type Stats struct {
	Session      string           `json:"session"`
	Len          int              `json:"len"`
	Branching    int              `json:"branching"`
	MaxDepth     int              `json:"max_depth"`
	Prune        bool             `json:"prune"`
	Capacity     int              `json:"capacity"`
	Occupied     int              `json:"occupied"`
	Storage      float64          `json:"storage"`
	StorageBytes int              `json:"storage_bytes"`
	Metrics      map[string]int64 `json:"metrics"`
}

// New validates cfg and builds an empty service. A nil cfg means config.Default().
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := nuid.Next()
	s := &Service{
		trie: x_trie.NewMap[int64, string](
			x_trie.WithBranching(cfg.Branching),
			x_trie.WithPruning(cfg.Prune),
		),
		cfg:      *cfg,
		id:       id,
		log:      x_log.New("trie_serv").With().Str("session", id).Logger(),
		metrics:  make(map[string]int64),
		watchers: make(map[uint64]func(Event)),
	}
	s.log.Debug().
		Int("bf", cfg.Branching).
		Bool("prune", cfg.Prune).
		Int("depth", s.trie.MaxDepth()).
		Msg("trie service created")
	return s, nil
}

// ID returns the session identifier of this service instance.
func (s *Service) ID() string { return s.id }

// ----------------------------------------------------
// Point operations
// ----------------------------------------------------

// Put stores value under key and reports the replaced value, if any.
func (s *Service) Put(key int64, value string) (string, bool) {
	s.mu.Lock()
	prev, replaced := s.trie.Insert(key, value)
	n := s.trie.Len()
	seq := s.nextSeq()
	s.mu.Unlock()

	s.IncMetric(constant.MetricPuts)
	if replaced {
		s.IncMetric(constant.MetricReplaces)
	}
	s.log.Debug().Int64("key", key).Bool("replaced", replaced).Msg("put")
	s.notify(Event{Seq: seq, Op: OpPut, Key: key, Value: value, Len: n})
	return prev.Value, replaced
}

// Get returns the value under key or constant.ErrNotFound.
func (s *Service) Get(key int64) (string, error) {
	s.mu.RLock()
	v, ok := s.trie.Get(key)
	s.mu.RUnlock()

	s.IncMetric(constant.MetricGets)
	if !ok {
		s.IncMetric(constant.MetricMisses)
		return "", fmt.Errorf("%w: %d", constant.ErrNotFound, key)
	}
	return v, nil
}

// Delete removes key and returns its value or constant.ErrNotFound.
func (s *Service) Delete(key int64) (string, error) {
	s.mu.Lock()
	e, ok := s.trie.Remove(key)
	n := s.trie.Len()
	var seq uint64
	if ok {
		seq = s.nextSeq()
	}
	s.mu.Unlock()

	if !ok {
		s.IncMetric(constant.MetricMisses)
		return "", fmt.Errorf("%w: %d", constant.ErrNotFound, key)
	}
	s.IncMetric(constant.MetricDeletes)
	s.log.Debug().Int64("key", key).Msg("delete")
	s.notify(Event{Seq: seq, Op: OpDel, Key: key, Value: e.Value, Len: n})
	return e.Value, nil
}

// First returns the smallest entry or constant.ErrNotFound when empty.
func (s *Service) First() (codec.Entry, error) {
	s.mu.RLock()
	k, v, ok := s.trie.First()
	s.mu.RUnlock()
	if !ok {
		return codec.Entry{}, constant.ErrNotFound
	}
	return codec.Entry{Key: k, Value: v}, nil
}

// Last returns the largest entry or constant.ErrNotFound when empty.
func (s *Service) Last() (codec.Entry, error) {
	s.mu.RLock()
	k, v, ok := s.trie.Last()
	s.mu.RUnlock()
	if !ok {
		return codec.Entry{}, constant.ErrNotFound
	}
	return codec.Entry{Key: k, Value: v}, nil
}

// Clear drops every entry but keeps the counters.
func (s *Service) Clear() {
	s.mu.Lock()
	s.trie.Clear()
	seq := s.nextSeq()
	s.mu.Unlock()
	s.log.Info().Msg("trie cleared")
	s.notify(Event{Seq: seq, Op: OpClear})
}

// ----------------------------------------------------
// Ordered reads
// ----------------------------------------------------

// Range returns up to limit entries in key order, or in reverse order.
// limit <= 0 returns everything.
func (s *Service) Range(reverse bool, limit int) []codec.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.IncMetric(constant.MetricScans)

	seq := s.trie.All()
	if reverse {
		seq = s.trie.Backward()
	}
	out := make([]codec.Entry, 0, min(s.trie.Len(), max(limit, 0)))
	for k, v := range seq {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, codec.Entry{Key: k, Value: v})
	}
	return out
}

// Ends walks from both ends at once and returns n entries from each side.
// The two slices never overlap.
func (s *Service) Ends(n int) (front, back []codec.Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.IncMetric(constant.MetricScans)

	it := s.trie.Iter()
	for i := 0; i < n; i++ {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		front = append(front, codec.Entry{Key: k, Value: v})
		k, v, ok = it.NextBack()
		if !ok {
			break
		}
		back = append(back, codec.Entry{Key: k, Value: v})
	}
	return front, back
}

// ----------------------------------------------------
// Introspection
// ----------------------------------------------------

// Stats reports the trie shape and occupancy together with the counters.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	capacity, occupied := s.trie.StorageUtil()
	st := Stats{
		Session:      s.id,
		Len:          s.trie.Len(),
		Branching:    s.trie.Branching(),
		MaxDepth:     s.trie.MaxDepth(),
		Prune:        s.cfg.Prune,
		Capacity:     capacity,
		Occupied:     occupied,
		Storage:      s.trie.Storage(),
		StorageBytes: s.trie.StorageBytes(),
	}
	s.mu.RUnlock()

	st.Metrics = s.Metrics()
	return st
}

// Dump writes the node layout of the trie to w.
func (s *Service) Dump(w io.Writer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.trie.Dump(w)
}
