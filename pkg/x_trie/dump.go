// file: rtrie/pkg/x_trie/dump.go
package x_trie

import (
	"fmt"
	"io"
	"strings"
)

//---------------------
// Tree Dump (Debug)
//---------------------

// Dump writes the node structure of the trie to w, stumps included.
func (m *Map[K, V]) Dump(w io.Writer) {
	fmt.Fprintf(w, "-- TRIE bf=%d depth=%d len=%d\n", m.shape.bf, m.shape.maxDepth, m.root.len)
	m.dump(w, m.root, 1)
}

// Dump writes the node structure of the set to w.
func (s *Set[K]) Dump(w io.Writer) { s.m.Dump(w) }

func (m *Map[K, V]) dump(w io.Writer, n *node[K, V], depth int) {
	if n.leaf {
		for d, used := range n.used {
			if used {
				fmt.Fprintf(w, "%s [%d] %v: %+v\n", dumpPre(depth), d, n.keys[d], n.values[d])
			}
		}
		return
	}
	for d, c := range n.children {
		if c == nil {
			continue
		}
		fmt.Fprintf(w, "%s %s [%d] len=%d\n", dumpPre(depth), c.kind(), d, c.len)
		m.dump(w, c, depth+1)
	}
}

func (n *node[K, V]) kind() string {
	switch {
	case n.len == 0:
		return "STUMP"
	case n.leaf:
		return "LEAF"
	default:
		return "NODE"
	}
}

//---------------------
// Indentation Helper
//---------------------

func dumpPre(depth int) string {
	if depth == 0 {
		return "--"
	}
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString("|__")
	return b.String()
}
