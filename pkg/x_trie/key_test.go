package x_trie

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsAndBounds(t *testing.T) {
	assert.Equal(t, 8, Bits[int8]())
	assert.Equal(t, 16, Bits[uint16]())
	assert.Equal(t, 64, Bits[int64]())

	assert.True(t, Signed[int32]())
	assert.False(t, Signed[uint32]())

	assert.Equal(t, int8(-128), MinKey[int8]())
	assert.Equal(t, int8(127), MaxKey[int8]())
	assert.Equal(t, uint16(0), MinKey[uint16]())
	assert.Equal(t, uint16(0xFFFF), MaxKey[uint16]())
}

func TestMaxDepth(t *testing.T) {
	assert.Equal(t, 3, MaxDepth[uint16](16))
	assert.Equal(t, 12, MaxDepth[uint64](32))
	assert.Equal(t, 63, MaxDepth[uint64](2))
	assert.Equal(t, 0, MaxDepth[uint8](256))
	assert.Equal(t, 0, MaxDepth[uint8](1000))
	assert.Equal(t, 2, MaxDepth[uint8](10)) // 255 has three decimal digits
	assert.Panics(t, func() { MaxDepth[uint8](1) })
}

func TestToIndexPreservesOrder(t *testing.T) {
	prev := toIndex(int8(-128))
	assert.Equal(t, uint64(0), prev)
	for k := -127; k <= 127; k++ {
		cur := toIndex(int8(k))
		require.Greater(t, cur, prev, "key %d", k)
		prev = cur
	}
	assert.Equal(t, uint64(255), prev)

	assert.Equal(t, uint64(0), toIndex(MinKey[int64]()))
	assert.Equal(t, ^uint64(0), toIndex(MaxKey[int64]()))
	assert.Equal(t, uint64(7), toIndex(uint32(7)))
}

func TestIndexAt(t *testing.T) {
	// 0x1234 as four hex digits, most significant first
	for depth, want := range []int{1, 2, 3, 4} {
		assert.Equal(t, want, IndexAt(uint16(0x1234), 16, depth))
	}
	assert.Equal(t, 31, IndexAt(uint64(31), 32, MaxDepth[uint64](32)))
	assert.Equal(t, 0, IndexAt(uint64(31), 32, 0))
}

func TestDigitPathsAgree(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, bf := range []int{2, 3, 4, 7, 10, 16, 32, 100, 256, 1000} {
		for _, width := range []int{8, 16, 32, 64} {
			ix := newIndexer(width, bf)
			for i := 0; i < 200; i++ {
				idx := r.Uint64() & mask(width)

				var rebuilt uint64
				for depth := 0; depth <= ix.maxDepth; depth++ {
					d := ix.digit(idx, depth)
					require.Less(t, d, bf)
					require.Equal(t, genericDigit(idx, bf, depth, ix.maxDepth), d,
						"bf=%d width=%d idx=%d depth=%d", bf, width, idx, depth)
					rebuilt = rebuilt*uint64(bf) + uint64(d)
				}
				require.Equal(t, idx, rebuilt, "bf=%d width=%d", bf, width)
			}
		}
	}
}

func TestPowerOfTwoMatchesDivision(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for _, bf := range []int{2, 4, 8, 16, 32, 64, 256} {
		fast := newIndexer(64, bf)
		require.NotZero(t, fast.log2)

		slow := *fast
		slow.log2 = 0
		slow.pows = make([]uint64, fast.maxDepth+1)
		for i, p := 0, uint64(1); i <= fast.maxDepth; i++ {
			slow.pows[i] = p
			p *= uint64(bf)
		}

		for i := 0; i < 200; i++ {
			idx := r.Uint64()
			for depth := 0; depth <= fast.maxDepth; depth++ {
				require.Equal(t, slow.digit(idx, depth), fast.digit(idx, depth))
			}
		}
	}
}
