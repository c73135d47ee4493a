//go:build notrieassert

package x_trie

const assertsEnabled = false
