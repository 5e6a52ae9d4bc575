package conversion

import (
	"strconv"
	"strings"
)

// The oper data trees returned by the device are loosely typed: every leaf
// arrives as a string, and a leaf may be missing entirely. All numeric fields
// of the normalized records are produced through the functions below, which
// never fail: a missing or malformed value yields the caller supplied default.

// ToInt converts v to an int64, returning def when v is absent or not parseable.
func ToInt(v interface{}, def int64) int64 {
	switch val := v.(type) {
	case nil:
		return def
	case int64:
		return val
	case int:
		return int64(val)
	case uint64:
		return int64(val)
	case float64:
		return int64(val)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return def
		}
		return i
	}
	return def
}

// ToUint converts v to a uint64, returning def when v is absent or not parseable.
func ToUint(v interface{}, def uint64) uint64 {
	switch val := v.(type) {
	case nil:
		return def
	case uint64:
		return val
	case int64:
		if val < 0 {
			return def
		}
		return uint64(val)
	case int:
		if val < 0 {
			return def
		}
		return uint64(val)
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return def
		}
		return u
	}
	return def
}

// ToBool converts v to a bool, returning def when v is absent or not parseable.
func ToBool(v interface{}, def bool) bool {
	switch val := v.(type) {
	case nil:
		return def
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// ToString converts v to a string, returning def when v is absent or not a
// terminal value.
func ToString(v interface{}, def string) string {
	switch val := v.(type) {
	case nil:
		return def
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return def
}
