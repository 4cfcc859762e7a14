// FILE: lixenwraith/envconfig/decode.go
package envconfig

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the current values of t into target, a non-nil pointer to a
// struct. Fields are matched by their `env` tag, or by name (case-insensitive).
// Numbers convert to any integer or float field; strings such as "30s"
// convert to time.Duration fields.
func (t *Template) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "env",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			numberToDurationHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(t.Values()); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

// numberToDurationHookFunc reads plain numbers as seconds for time.Duration
// fields, since number keys are stored as float64.
func numberToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.Float64 || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return time.Duration(data.(float64) * float64(time.Second)), nil
	}
}
