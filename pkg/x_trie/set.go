// file: rtrie/pkg/x_trie/set.go
package x_trie

import (
	"fmt"
	"iter"
	"strings"
)

// Set is an ordered set of integer keys backed by a radix trie.
type Set[K Key] struct {
	m *Map[K, struct{}]
}

// NewSet creates an empty Set.
func NewSet[K Key](opts ...Option) *Set[K] {
	return &Set[K]{m: NewMap[K, struct{}](opts...)}
}

// SetFrom builds a Set from every key of seq.
func SetFrom[K Key](seq iter.Seq[K], opts ...Option) *Set[K] {
	s := NewSet[K](opts...)
	s.Extend(seq)
	return s
}

// Insert adds key; if it was already present the stored key is returned with true.
func (s *Set[K]) Insert(key K) (K, bool) {
	e, ok := s.m.Insert(key, struct{}{})
	return e.Key, ok
}

// Extend adds every key of seq.
func (s *Set[K]) Extend(seq iter.Seq[K]) {
	for k := range seq {
		s.m.Insert(k, struct{}{})
	}
}

// Remove deletes key and returns it with true if it was present.
func (s *Set[K]) Remove(key K) (K, bool) {
	e, ok := s.m.Remove(key)
	return e.Key, ok
}

// Get returns the stored key equal to key.
func (s *Set[K]) Get(key K) (K, bool) {
	e, ok := s.m.root.get(s.m.shape, 0, key)
	return e.Key, ok
}

func (s *Set[K]) Contains(key K) bool { return s.m.Contains(key) }
func (s *Set[K]) Len() int            { return s.m.Len() }
func (s *Set[K]) Clear()              { s.m.Clear() }
func (s *Set[K]) StorageBytes() int   { return s.m.StorageBytes() }
func (s *Set[K]) Storage() float64    { return s.m.Storage() }

// First returns the smallest key.
func (s *Set[K]) First() (K, bool) {
	k, _, ok := s.m.First()
	return k, ok
}

// Last returns the largest key.
func (s *Set[K]) Last() (K, bool) {
	k, _, ok := s.m.Last()
	return k, ok
}

// Iter returns a double-ended cursor; values are empty structs.
func (s *Set[K]) Iter() *Iter[K, struct{}] { return s.m.Iter() }

// All yields the keys in ascending order.
func (s *Set[K]) All() iter.Seq[K] { return s.m.Keys() }

// Backward yields the keys in descending order.
func (s *Set[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range s.m.Backward() {
			if !yield(k) {
				return
			}
		}
	}
}

func (s *Set[K]) String() string {
	var b strings.Builder
	b.WriteString("set[")
	sep := ""
	for k := range s.All() {
		fmt.Fprintf(&b, "%s%v", sep, k)
		sep = " "
	}
	b.WriteByte(']')
	return b.String()
}
