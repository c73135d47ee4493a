// file: rtrie/pkg/x_trie/iter.go
package x_trie

//---------------------
// Sibling Cursor
//---------------------

// siblings is the unvisited window of one internal node's children.
type siblings[K Key, V any] struct {
	children []*node[K, V]
}

// popFront returns the leftmost non-empty child and shrinks the window past it.
func (c *siblings[K, V]) popFront() *node[K, V] {
	for len(c.children) > 0 {
		child := c.children[0]
		c.children = c.children[1:]
		if child != nil && child.len != 0 {
			return child
		}
	}
	return nil
}

// popBack returns the rightmost non-empty child and shrinks the window before it.
func (c *siblings[K, V]) popBack() *node[K, V] {
	for n := len(c.children); n > 0; n = len(c.children) {
		child := c.children[n-1]
		c.children = c.children[:n-1]
		if child != nil && child.len != 0 {
			return child
		}
	}
	return nil
}

//---------------------
// Slot Cursor
//---------------------

// slots is the unvisited window [lo, hi) of one leaf's slot arrays.
type slots[K Key, V any] struct {
	leaf   *node[K, V]
	lo, hi int
}

func openLeaf[K Key, V any](leaf *node[K, V]) slots[K, V] {
	return slots[K, V]{leaf: leaf, hi: len(leaf.used)}
}

func (c *slots[K, V]) empty() bool { return c.lo >= c.hi }

func (c *slots[K, V]) popFront() (K, V, bool) {
	for ; c.lo < c.hi; c.lo++ {
		if d := c.lo; c.leaf.used[d] {
			c.lo++
			return c.leaf.keys[d], c.leaf.values[d], true
		}
	}
	var (
		k K
		v V
	)
	return k, v, false
}

func (c *slots[K, V]) popBack() (K, V, bool) {
	for ; c.hi > c.lo; c.hi-- {
		if d := c.hi - 1; c.leaf.used[d] {
			c.hi--
			return c.leaf.keys[d], c.leaf.values[d], true
		}
	}
	var (
		k K
		v V
	)
	return k, v, false
}

//---------------------
// Iter
//---------------------

// Iter walks a trie in ascending key order from both ends at once.
// Next and NextBack may be interleaved freely; every pair is returned exactly once.
// The trie must not be mutated while an Iter is in use.
type Iter[K Key, V any] struct {
	common    siblings[K, V]   // undivided region, initially the root's children
	left      []siblings[K, V] // path to the open left leaf, shallowest first
	right     []siblings[K, V] // path to the open right leaf, shallowest first
	leftLeaf  slots[K, V]
	rightLeaf slots[K, V]
}

func newIter[K Key, V any](root *node[K, V]) *Iter[K, V] {
	it := &Iter[K, V]{}
	if root.leaf {
		it.leftLeaf = openLeaf(root)
	} else {
		it.common = siblings[K, V]{children: root.children}
	}
	return it
}

// Next returns the smallest pair not yet returned by either end.
func (it *Iter[K, V]) Next() (K, V, bool) {
	for {
		if k, v, ok := it.leftLeaf.popFront(); ok {
			return k, v, true
		}
		if !it.advanceLeft() {
			var (
				k K
				v V
			)
			return k, v, false
		}
	}
}

// NextBack returns the largest pair not yet returned by either end.
func (it *Iter[K, V]) NextBack() (K, V, bool) {
	for {
		if k, v, ok := it.rightLeaf.popBack(); ok {
			return k, v, true
		}
		if !it.advanceRight() {
			var (
				k K
				v V
			)
			return k, v, false
		}
	}
}

// advanceLeft opens the next leaf for the left cursor.
func (it *Iter[K, V]) advanceLeft() bool {
	// backtrack our own path
	for len(it.left) > 0 {
		last := len(it.left) - 1
		if child := it.left[last].popFront(); child != nil {
			it.descendLeft(child)
			return true
		}
		it.left = it.left[:last]
	}

	if child := it.common.popFront(); child != nil {
		it.descendLeft(child)
		return true
	}

	// only the right path is left: adopt its frames as the common region
	for len(it.right) > 0 {
		it.common, it.right = it.right[0], it.right[1:]
		if child := it.common.popFront(); child != nil {
			it.descendLeft(child)
			return true
		}
	}

	// whatever remains sits in the leaf the right cursor has open
	if !it.rightLeaf.empty() {
		it.leftLeaf, it.rightLeaf = it.rightLeaf, it.leftLeaf
		return true
	}
	return false
}

// advanceRight mirrors advanceLeft.
func (it *Iter[K, V]) advanceRight() bool {
	for len(it.right) > 0 {
		last := len(it.right) - 1
		if child := it.right[last].popBack(); child != nil {
			it.descendRight(child)
			return true
		}
		it.right = it.right[:last]
	}

	if child := it.common.popBack(); child != nil {
		it.descendRight(child)
		return true
	}

	for len(it.left) > 0 {
		it.common, it.left = it.left[0], it.left[1:]
		if child := it.common.popBack(); child != nil {
			it.descendRight(child)
			return true
		}
	}

	if !it.leftLeaf.empty() {
		it.leftLeaf, it.rightLeaf = it.rightLeaf, it.leftLeaf
		return true
	}
	return false
}

func (it *Iter[K, V]) descendLeft(n *node[K, V]) {
	for n != nil && !n.leaf {
		frame := siblings[K, V]{children: n.children}
		n = frame.popFront()
		it.left = append(it.left, frame)
	}
	if n != nil {
		it.leftLeaf = openLeaf(n)
	}
}

func (it *Iter[K, V]) descendRight(n *node[K, V]) {
	for n != nil && !n.leaf {
		frame := siblings[K, V]{children: n.children}
		n = frame.popBack()
		it.right = append(it.right, frame)
	}
	if n != nil {
		it.rightLeaf = openLeaf(n)
	}
}
