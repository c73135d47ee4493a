// file: rtrie/pkg/x_trie/key.go
package x_trie

import (
	"math/bits"
	"unsafe"
)

//---------------------
// Key Capability
//---------------------

// Key is any fixed-width integer usable as a trie key.
type Key interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Bits returns the bit width of K.
func Bits[K Key]() int {
	var k K
	return int(unsafe.Sizeof(k)) * 8
}

// Signed reports whether K is a signed integer type.
func Signed[K Key]() bool {
	var zero K
	return zero-1 < zero
}

// MinKey returns the smallest value of K.
func MinKey[K Key]() K {
	if !Signed[K]() {
		return 0
	}
	return K(uint64(1) << (Bits[K]() - 1))
}

// MaxKey returns the largest value of K.
func MaxKey[K Key]() K {
	if !Signed[K]() {
		var zero K
		return ^zero
	}
	return ^MinKey[K]()
}

// toIndex maps a key into the unsigned index domain without changing its order.
// Signed keys have their sign bit flipped so MinKey maps to 0.
func toIndex[K Key](k K) uint64 {
	w := Bits[K]()
	idx := uint64(k) & mask(w)
	if Signed[K]() {
		idx ^= uint64(1) << (w - 1)
	}
	return idx
}

func mask(width int) uint64 {
	return ^uint64(0) >> (64 - width)
}

// MaxDepth returns the leaf depth for K under branching factor bf:
// one less than the number of base-bf digits of the largest index.
func MaxDepth[K Key](bf int) int {
	return maxDepth(Bits[K](), bf)
}

func maxDepth(width, bf int) int {
	if bf < 2 {
		panic("x_trie: branching factor must be at least 2")
	}
	digits := 0
	for rem := mask(width); rem > 0; rem /= uint64(bf) {
		digits++
	}
	return digits - 1
}

// IndexAt returns the digit of key at depth, most significant first.
func IndexAt[K Key](key K, bf, depth int) int {
	ix := newIndexer(Bits[K](), bf)
	return ix.digit(toIndex(key), depth)
}

//---------------------
// Indexer
//---------------------

// indexer caches the digit math for one (width, branching factor) pair.
type indexer struct {
	bf       int
	maxDepth int
	log2     uint     // shift per level, 0 unless bf is a power of two
	pows     []uint64 // pows[i] = bf^i, only for non power-of-two bf
}

func newIndexer(width, bf int) *indexer {
	ix := &indexer{bf: bf, maxDepth: maxDepth(width, bf)}
	if bf&(bf-1) == 0 {
		ix.log2 = uint(bits.TrailingZeros(uint(bf)))
		return ix
	}
	ix.pows = make([]uint64, ix.maxDepth+1)
	p := uint64(1)
	for i := range ix.pows {
		ix.pows[i] = p
		if i < ix.maxDepth {
			p *= uint64(bf)
		}
	}
	return ix
}

// digit extracts the digit of idx at depth.
func (ix *indexer) digit(idx uint64, depth int) int {
	shift := ix.maxDepth - depth
	if ix.log2 != 0 {
		return int((idx >> (ix.log2 * uint(shift))) & uint64(ix.bf-1))
	}
	return int((idx / ix.pows[shift]) % uint64(ix.bf))
}

// genericDigit is the reference formula both digit paths must agree with.
func genericDigit(idx uint64, bf, depth, maxDepth int) int {
	for i := 0; i < maxDepth-depth; i++ {
		idx /= uint64(bf)
	}
	return int(idx % uint64(bf))
}
