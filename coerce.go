// FILE: lixenwraith/envconfig/coerce.go
package envconfig

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind is the declared type of a template key, taken from its default value
type Kind int

const (
	// KindString keys hold string values; "" marks them mandatory
	KindString Kind = iota
	// KindNumber keys hold float64 values; NaN marks them mandatory
	KindNumber
	// KindBool keys hold bool values and are never mandatory
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// BoolTable maps lower-case tokens to the boolean they spell
type BoolTable map[string]bool

// DefaultBooleans returns a fresh copy of the recognized boolean spellings.
func DefaultBooleans() BoolTable {
	return BoolTable{
		"on": true, "off": false,
		"true": true, "false": false,
		"yes": true, "no": false,
		"enable": true, "disable": false,
		"enabled": true, "disabled": false,
	}
}

// With returns a new table holding t overlaid with extra. Keys of extra are
// lower-cased so lookups stay case-insensitive.
func (t BoolTable) With(extra BoolTable) BoolTable {
	merged := make(BoolTable, len(t)+len(extra))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range extra {
		merged[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return merged
}

func (t BoolTable) lookup(raw string) (bool, bool) {
	b, ok := t[strings.ToLower(strings.TrimSpace(raw))]
	return b, ok
}

// ParseBool converts raw into a boolean using table, or DefaultBooleans when
// table is nil. An unrecognized token yields the fallback if one is given,
// otherwise an *InvalidBooleanError.
func ParseBool(raw string, table BoolTable, fallback ...bool) (bool, error) {
	if table == nil {
		table = DefaultBooleans()
	}
	if b, ok := table.lookup(raw); ok {
		return b, nil
	}
	if len(fallback) > 0 {
		return fallback[0], nil
	}
	return false, &InvalidBooleanError{Value: raw}
}

// ParseNumber converts raw into a float64. Anything that is not a number,
// including the empty string and underscore-separated digits, yields NaN.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	// Digit separators are not numbers
	if s == "" || strings.Contains(s, "_") {
		return math.NaN()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Base-prefixed integers (0x1F, 0o17, 0b101)
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return float64(i)
	}
	return math.NaN()
}

// normalizeDefault decides the Kind of a default value and converts numeric
// kinds to float64.
func normalizeDefault(value any) (Kind, any, error) {
	if value == nil {
		return KindString, nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return KindString, v.String(), nil
	case reflect.Bool:
		return KindBool, v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindNumber, float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindNumber, float64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return KindNumber, v.Float(), nil
	}

	return KindString, nil, fmt.Errorf("%w: %T", ErrUnsupportedType, value)
}

// present reports whether value counts as a usable configuration value.
// Empty strings, NaN and nil are absent; 0 and false are present.
func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return !math.IsNaN(v)
	case bool:
		return true
	}
	return true
}

// coerce converts a raw source string to kind. The second result is false
// when raw is empty or cannot be converted.
func coerce(kind Kind, raw string, table BoolTable) (any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}

	switch kind {
	case KindNumber:
		f := ParseNumber(s)
		return f, present(f)
	case KindBool:
		b, ok := table.lookup(s)
		return b, ok
	default:
		return s, true
	}
}
