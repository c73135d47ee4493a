// file: rtrie/servs/s_trie/trie_serv/events.go
package trie_serv

import "github.com/rskv-p/rtrie/recover"

// Event describes one mutation of the trie.
// Seq is assigned under the trie lock and increases by one per mutation.
type Event struct {
	Seq   uint64 `json:"seq"`
	Op    string `json:"op"` // put, del or clear
	Key   int64  `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
	Len   int    `json:"len"`
}

const (
	OpPut   = "put"
	OpDel   = "del"
	OpClear = "clear"
)

// Watch registers fn for every later mutation and returns a function that removes it.
// fn runs on the mutating goroutine after the trie lock is released and must not block.
// Concurrent writers may deliver events out of order; Seq restores the mutation order.
// A panicking fn is logged and does not reach the writer.
func (s *Service) Watch(fn func(Event)) (cancel func()) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	s.nextWatch++
	id := s.nextWatch
	s.watchers[id] = fn
	return func() {
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		delete(s.watchers, id)
	}
}

func (s *Service) notify(ev Event) {
	s.watchMu.Lock()
	fns := make([]func(Event), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.watchMu.Unlock()

	for _, fn := range fns {
		recover.Safe("watch "+ev.Op, func() { fn(ev) })
	}
}

// nextSeq must be called with mu held for writing.
func (s *Service) nextSeq() uint64 {
	s.seq++
	return s.seq
}
