// Package cast provides checked numeric conversions for values crossing the provider boundary.
package cast

import "math"

// ToFloat64 converts a numeric value to float64. Supports int/uint/float types.
// Protocol values carry every number as a double, so callers use this to normalize Go numerics.
func ToFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

// ToInt32 narrows v to int32. ok is false when v lies outside [math.MinInt32, math.MaxInt32];
// the value is never truncated or saturated.
func ToInt32(v int64) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}
