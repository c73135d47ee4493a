// file: rtrie/pkg/x_trie/node.go
package x_trie

import (
	"fmt"
	"unsafe"
)

//---------------------
// Node
//---------------------

// Entry is a key/value pair stored in the trie.
type Entry[K Key, V any] struct {
	Key   K
	Value V
}

// node is either internal (children) or a leaf (keys/values/used), never both.
// len is the number of live pairs below the node; a node with len == 0 is a stump.
type node[K Key, V any] struct {
	leaf     bool
	len      int
	children []*node[K, V]
	keys     []K
	values   []V
	used     []bool
}

func newInternal[K Key, V any](bf int) *node[K, V] {
	return &node[K, V]{children: make([]*node[K, V], bf)}
}

func newLeaf[K Key, V any](bf int) *node[K, V] {
	return &node[K, V]{
		leaf:   true,
		keys:   make([]K, bf),
		values: make([]V, bf),
		used:   make([]bool, bf),
	}
}

// shape carries the per-tree constants threaded through every node call.
type shape struct {
	*indexer
	prune bool
}

//---------------------
// Mutation
//---------------------

// insert stores key/value below n and returns the evicted pair, if any.
func (n *node[K, V]) insert(s *shape, depth int, key K, value V) (Entry[K, V], bool) {
	n.assertDepth(s, depth)

	d := s.digit(toIndex(key), depth)
	if n.leaf {
		prev, replaced := n.slot(d)
		n.keys[d], n.values[d], n.used[d] = key, value, true
		if !replaced {
			n.len++
		}
		return prev, replaced
	}

	child := n.children[d]
	if child == nil {
		if depth+1 == s.maxDepth {
			child = newLeaf[K, V](s.bf)
		} else {
			child = newInternal[K, V](s.bf)
		}
		n.children[d] = child
	}
	prev, replaced := child.insert(s, depth+1, key, value)
	if !replaced {
		n.len++
	}
	return prev, replaced
}

// remove clears key below n and returns the removed pair, if any.
func (n *node[K, V]) remove(s *shape, depth int, key K) (Entry[K, V], bool) {
	n.assertDepth(s, depth)

	d := s.digit(toIndex(key), depth)
	if n.leaf {
		prev, ok := n.slot(d)
		if ok {
			var (
				zk K
				zv V
			)
			n.keys[d], n.values[d], n.used[d] = zk, zv, false
			n.len--
		}
		return prev, ok
	}

	child := n.children[d]
	if child == nil {
		return Entry[K, V]{}, false
	}
	before := child.len
	prev, ok := child.remove(s, depth+1, key)
	if child.len < before {
		n.len--
	}
	if child.len == 0 && s.prune {
		n.children[d] = nil
	}
	return prev, ok
}

//---------------------
// Lookup
//---------------------

// lookup walks to the leaf slot for key without touching len.
func (n *node[K, V]) lookup(s *shape, depth int, key K) (*node[K, V], int) {
	idx := toIndex(key)
	for cur := n; cur != nil; depth++ {
		cur.assertDepth(s, depth)
		d := s.digit(idx, depth)
		if cur.leaf {
			if !cur.used[d] {
				return nil, 0
			}
			return cur, d
		}
		cur = cur.children[d]
	}
	return nil, 0
}

func (n *node[K, V]) get(s *shape, depth int, key K) (Entry[K, V], bool) {
	if leaf, d := n.lookup(s, depth, key); leaf != nil {
		return Entry[K, V]{Key: leaf.keys[d], Value: leaf.values[d]}, true
	}
	return Entry[K, V]{}, false
}

func (n *node[K, V]) getPtr(s *shape, depth int, key K) *V {
	if leaf, d := n.lookup(s, depth, key); leaf != nil {
		return &leaf.values[d]
	}
	return nil
}

// edge descends to the smallest (reverse=false) or largest occupied slot,
// skipping stumps on the way.
func (n *node[K, V]) edge(s *shape, depth int, reverse bool) (*node[K, V], int) {
	cur := n
	for cur != nil && cur.len > 0 {
		cur.assertDepth(s, depth)
		width := len(cur.children)
		if cur.leaf {
			width = len(cur.used)
		}
		next := (*node[K, V])(nil)
		for i := 0; i < width; i++ {
			d := i
			if reverse {
				d = width - 1 - i
			}
			if cur.leaf {
				if cur.used[d] {
					return cur, d
				}
				continue
			}
			if c := cur.children[d]; c != nil && c.len > 0 {
				next = c
				break
			}
		}
		cur = next
		depth++
	}
	return nil, 0
}

func (n *node[K, V]) first(s *shape) (Entry[K, V], bool) {
	return entryAt(n.edge(s, 0, false))
}

func (n *node[K, V]) last(s *shape) (Entry[K, V], bool) {
	return entryAt(n.edge(s, 0, true))
}

func entryAt[K Key, V any](leaf *node[K, V], d int) (Entry[K, V], bool) {
	if leaf == nil {
		return Entry[K, V]{}, false
	}
	return Entry[K, V]{Key: leaf.keys[d], Value: leaf.values[d]}, true
}

func (n *node[K, V]) slot(d int) (Entry[K, V], bool) {
	if !n.used[d] {
		return Entry[K, V]{}, false
	}
	return Entry[K, V]{Key: n.keys[d], Value: n.values[d]}, true
}

//---------------------
// Storage Accounting
//---------------------

// storageBytes sums the committed footprint of the subtree, unused slots included.
func (n *node[K, V]) storageBytes() int {
	var (
		k K
		v V
	)
	size := int(unsafe.Sizeof(*n))
	size += cap(n.children) * int(unsafe.Sizeof(n))
	size += cap(n.keys) * int(unsafe.Sizeof(k))
	size += cap(n.values) * int(unsafe.Sizeof(v))
	size += cap(n.used)
	for _, c := range n.children {
		if c != nil {
			size += c.storageBytes()
		}
	}
	return size
}

// storageUtil returns (slot capacity, occupied slots) over all leaves below n.
func (n *node[K, V]) storageUtil() (int, int) {
	if n.leaf {
		return len(n.used), n.len
	}
	var capacity, occupied int
	for _, c := range n.children {
		if c != nil {
			cc, co := c.storageUtil()
			capacity += cc
			occupied += co
		}
	}
	return capacity, occupied
}

//---------------------
// Assertions
//---------------------

func (n *node[K, V]) assertDepth(s *shape, depth int) {
	if !assertsEnabled {
		return
	}
	if n.leaf && depth != s.maxDepth {
		panic(fmt.Sprintf("x_trie: leaf at depth %d, leaves live at depth %d", depth, s.maxDepth))
	}
	if !n.leaf && depth >= s.maxDepth {
		panic(fmt.Sprintf("x_trie: internal node at depth %d, max depth is %d", depth, s.maxDepth))
	}
}
