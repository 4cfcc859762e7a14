// File: lixenwraith/envconfig/type.go
package envconfig

import (
	"fmt"
	"math"
	"strconv"
)

// String retrieves the current value of key as a string.
// Numbers and booleans are formatted the way they are written to env files.
func (t *Template) String(key string) (string, error) {
	val, found := t.Get(key)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrKeyNotRegistered, key)
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return formatNumber(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for key %s", val, key)
	}
}

// Float64 retrieves the current value of a number key.
// String keys are parsed; booleans convert to 0 or 1.
func (t *Template) Float64(key string) (float64, error) {
	val, found := t.Get(key)
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrKeyNotRegistered, key)
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f := ParseNumber(v)
		if math.IsNaN(f) {
			return 0, fmt.Errorf("cannot convert string %q to float64 for key %s", v, key)
		}
		return f, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to float64 for key %s", val, key)
}

// Int64 retrieves the current value of key truncated to an int64.
// An unresolved NaN value is an error.
func (t *Template) Int64(key string) (int64, error) {
	f, err := t.Float64(key)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v for key %s is not a finite number", f, key)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("value %v for key %s overflows int64", f, key)
	}
	return int64(f), nil
}

// Bool retrieves the current value of key as a boolean.
// Strings are looked up in DefaultBooleans; numbers are true when non-zero.
func (t *Template) Bool(key string) (bool, error) {
	val, found := t.Get(key)
	if !found {
		return false, fmt.Errorf("%w: %s", ErrKeyNotRegistered, key)
	}

	switch v := val.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0 && !math.IsNaN(v), nil
	case string:
		b, err := ParseBool(v, nil)
		if err != nil {
			return false, fmt.Errorf("key %s: %w", key, err)
		}
		return b, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for key %s", val, key)
}

// formatNumber writes a float64 in its shortest form: 8100, 0.5, NaN.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
