// file: rtrie/codec/helper.go
package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rskv-p/rtrie/constant"
)

// Entry is the wire form of one key/value pair.
type Entry struct {
	Key   int64  `json:"key"`
	Value string `json:"value"`
}

// String renders the entry as "key: value".
func (e Entry) String() string {
	return fmt.Sprintf("%d: %s", e.Key, e.Value)
}

// ----------------------------------------------------
// Keys
// ----------------------------------------------------

// ParseKey parses a decimal or 0x/0o/0b-prefixed signed 64-bit key.
func ParseKey(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", constant.ErrBadKey)
	}
	k, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", constant.ErrBadKey, s)
	}
	return k, nil
}

// ----------------------------------------------------
// Loose converters
// ----------------------------------------------------

// ToString tries to convert any value to a string.
func ToString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		b, err := json.Marshal(x)
		return string(b), err == nil
	}
}

// ToInt64 tries to convert any value to int64.
func ToInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		return int64(x), true
	case json.Number:
		i, err := x.Int64()
		return i, err == nil
	case string:
		i, err := ParseKey(x)
		return i, err == nil
	}
	return 0, false
}

// ToBool tries to convert any value to bool.
func ToBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(x)
		return b, err == nil
	}
	return false, false
}
