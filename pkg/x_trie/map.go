// file: rtrie/pkg/x_trie/map.go
package x_trie

import (
	"fmt"
	"iter"
	"strings"
)

// DefaultBranching is the branching factor used when none is configured.
const DefaultBranching = 32

//---------------------
// Options
//---------------------

type options struct {
	branching int
	prune     bool
}

// Option configures a Map or Set.
type Option func(*options)

// WithBranching sets the number of children per trie level (at least 2).
func WithBranching(bf int) Option {
	return func(o *options) { o.branching = bf }
}

// WithPruning makes removals drop emptied subtrees instead of keeping them as stumps.
func WithPruning(prune bool) Option {
	return func(o *options) { o.prune = prune }
}

func buildOptions(opts []Option) options {
	o := options{branching: DefaultBranching}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

//---------------------
// Map
//---------------------

// Map is an ordered map from integer keys to values backed by a radix trie.
// It is not safe for concurrent use.
type Map[K Key, V any] struct {
	root  *node[K, V]
	shape *shape
}

// NewMap creates an empty Map. It panics if the branching factor is below 2.
func NewMap[K Key, V any](opts ...Option) *Map[K, V] {
	o := buildOptions(opts)
	m := &Map[K, V]{
		shape: &shape{indexer: newIndexer(Bits[K](), o.branching), prune: o.prune},
	}
	m.root = m.newRoot()
	return m
}

// MapFrom builds a Map by inserting every pair of seq in order.
func MapFrom[K Key, V any](seq iter.Seq2[K, V], opts ...Option) *Map[K, V] {
	m := NewMap[K, V](opts...)
	m.Extend(seq)
	return m
}

func (m *Map[K, V]) newRoot() *node[K, V] {
	if m.shape.maxDepth == 0 {
		return newLeaf[K, V](m.shape.bf)
	}
	return newInternal[K, V](m.shape.bf)
}

// Branching returns the branching factor.
func (m *Map[K, V]) Branching() int { return m.shape.bf }

// MaxDepth returns the depth at which leaves live.
func (m *Map[K, V]) MaxDepth() int { return m.shape.maxDepth }

// Len returns the number of stored pairs.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.root.len
}

// Clear removes every pair and releases all nodes.
func (m *Map[K, V]) Clear() {
	m.root = m.newRoot()
}

// Insert stores value under key and returns the replaced pair, if there was one.
func (m *Map[K, V]) Insert(key K, value V) (Entry[K, V], bool) {
	return m.root.insert(m.shape, 0, key, value)
}

// Extend inserts every pair of seq.
func (m *Map[K, V]) Extend(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.root.insert(m.shape, 0, k, v)
	}
}

// Remove deletes key and returns the removed pair.
func (m *Map[K, V]) Remove(key K) (Entry[K, V], bool) {
	return m.root.remove(m.shape, 0, key)
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	e, ok := m.root.get(m.shape, 0, key)
	return e.Value, ok
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.root.get(m.shape, 0, key)
	return ok
}

// GetPtr returns a pointer to the value stored under key, or nil.
// The pointer is valid until key is removed.
func (m *Map[K, V]) GetPtr(key K) *V {
	return m.root.getPtr(m.shape, 0, key)
}

// First returns the pair with the smallest key.
func (m *Map[K, V]) First() (K, V, bool) {
	e, ok := m.root.first(m.shape)
	return e.Key, e.Value, ok
}

// Last returns the pair with the largest key.
func (m *Map[K, V]) Last() (K, V, bool) {
	e, ok := m.root.last(m.shape)
	return e.Key, e.Value, ok
}

// FirstPtr is First with a mutable value.
func (m *Map[K, V]) FirstPtr() (K, *V, bool) {
	return edgePtr(m.root.edge(m.shape, 0, false))
}

// LastPtr is Last with a mutable value.
func (m *Map[K, V]) LastPtr() (K, *V, bool) {
	return edgePtr(m.root.edge(m.shape, 0, true))
}

func edgePtr[K Key, V any](leaf *node[K, V], d int) (K, *V, bool) {
	if leaf == nil {
		var k K
		return k, nil, false
	}
	return leaf.keys[d], &leaf.values[d], true
}

//---------------------
// Storage
//---------------------

// StorageBytes returns the committed memory of the trie, unused slots included.
func (m *Map[K, V]) StorageBytes() int {
	return m.root.storageBytes()
}

// StorageUtil returns the leaf slot capacity and how many slots are occupied.
func (m *Map[K, V]) StorageUtil() (capacity, occupied int) {
	return m.root.storageUtil()
}

// Storage returns the leaf load factor in [0,1]; 0 when no leaf is allocated.
func (m *Map[K, V]) Storage() float64 {
	capacity, occupied := m.root.storageUtil()
	if capacity == 0 {
		return 0
	}
	return float64(occupied) / float64(capacity)
}

//---------------------
// Iteration
//---------------------

// Iter returns a double-ended cursor over the pairs in ascending key order.
func (m *Map[K, V]) Iter() *Iter[K, V] {
	return newIter(m.root)
}

// All yields the pairs in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Iter()
		for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Backward yields the pairs in descending key order.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Iter()
		for k, v, ok := it.NextBack(); ok; k, v, ok = it.NextBack() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys yields the keys in ascending order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields the values in ascending key order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// String renders the live pairs in ascending key order.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("map[")
	sep := ""
	for k, v := range m.All() {
		fmt.Fprintf(&b, "%s%v:%v", sep, k, v)
		sep = " "
	}
	b.WriteByte(']')
	return b.String()
}
