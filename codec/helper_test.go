// file: rtrie/codec/helper_test.go
package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	cases := map[string]int64{
		"0":                    0,
		"42":                   42,
		" -17 ":                -17,
		"0x10":                 16,
		"0b101":                5,
		"9223372036854775807":  9223372036854775807,
		"-9223372036854775808": -9223372036854775808,
	}
	for in, want := range cases {
		got, err := codec.ParseKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "abc", "1.5", "9223372036854775808"} {
		_, err := codec.ParseKey(bad)
		assert.ErrorIs(t, err, constant.ErrBadKey, bad)
	}
}

func TestEntry_JSON(t *testing.T) {
	data, err := codec.Marshal(codec.Entry{Key: -3, Value: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":-3,"value":"x"}`, string(data))
	assert.Equal(t, "-3: x", codec.Entry{Key: -3, Value: "x"}.String())
}

func TestToString(t *testing.T) {
	s, ok := codec.ToString("abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	s, _ = codec.ToString(123)
	assert.Equal(t, "123", s)
	s, _ = codec.ToString([]byte("xyz"))
	assert.Equal(t, "xyz", s)
	s, _ = codec.ToString(3.5)
	assert.Equal(t, "3.5", s)
	s, _ = codec.ToString(true)
	assert.Equal(t, "true", s)
	s, _ = codec.ToString(map[string]any{"x": 1})
	assert.Contains(t, s, `"x":1`)

	_, ok = codec.ToString(nil)
	assert.False(t, ok)
}

func TestToInt64(t *testing.T) {
	i, ok := codec.ToInt64(42)
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)

	i, _ = codec.ToInt64(1.9)
	assert.Equal(t, int64(1), i)
	i, _ = codec.ToInt64("0x20")
	assert.Equal(t, int64(32), i)
	i, _ = codec.ToInt64(json.Number("-8"))
	assert.Equal(t, int64(-8), i)

	_, ok = codec.ToInt64("xx")
	assert.False(t, ok)
	_, ok = codec.ToInt64(struct{}{})
	assert.False(t, ok)
}

func TestToBool(t *testing.T) {
	b, ok := codec.ToBool("true")
	assert.True(t, ok)
	assert.True(t, b)
	b, _ = codec.ToBool(false)
	assert.False(t, b)
	_, ok = codec.ToBool("maybe")
	assert.False(t, ok)
}
