//go:build !notrieassert

package x_trie

// assertsEnabled turns on the depth/kind checks; build with -tags notrieassert to drop them.
const assertsEnabled = true
