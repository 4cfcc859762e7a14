// FILE: lixenwraith/envconfig/template.go
package envconfig

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/fatih/structtag"
)

// templateItem holds the registered default and the current value of a key
type templateItem struct {
	kind         Kind
	defaultValue any
	currentValue any
}

// Template is an ordered set of configuration keys, each with a typed default.
// Resolve overwrites current values in place.
type Template struct {
	keys  []string                // Registration order
	items map[string]templateItem // Maps keys to their values
	mutex sync.RWMutex            // Protects concurrent access
}

// NewTemplate creates an empty Template.
func NewTemplate() *Template {
	return &Template{
		items: make(map[string]templateItem),
	}
}

// Register adds key with the given default. The default's type (number, bool
// or string) becomes the key's declared type. An empty string or NaN default
// makes the key mandatory. Registering an existing key replaces its default
// but keeps its position.
func (t *Template) Register(key string, defaultValue any) error {
	if !isValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	kind, value, err := normalizeDefault(defaultValue)
	if err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, exists := t.items[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.items[key] = templateItem{
		kind:         kind,
		defaultValue: value,
		currentValue: value,
	}
	return nil
}

// Add registers key like Register and returns t for chaining. It panics on
// an invalid key or unsupported default type.
func (t *Template) Add(key string, defaultValue any) *Template {
	t.mustRegister(key, defaultValue)
	return t
}

func (t *Template) mustRegister(key string, value any) {
	if err := t.Register(key, value); err != nil {
		panic(err)
	}
}

// RegisterStruct registers every exported field of a struct of strings, bools
// and numbers. The key comes from the `env` tag, falling back to the field name.
// Fields tagged `env:"-"` are skipped.
func (t *Template) RegisterStruct(structWithDefaults any) error {
	v := reflect.ValueOf(structWithDefaults)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("RegisterStruct requires a struct, got %T", structWithDefaults)
	}

	st := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}

		key := field.Name
		tags, err := structtag.Parse(string(field.Tag))
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		if tags == nil {
			tags = &structtag.Tags{}
		}
		if tag, err := tags.Get("env"); err == nil {
			if tag.Name == "-" {
				continue
			}
			if tag.Name != "" {
				key = tag.Name
			}
		}

		if err := t.Register(key, v.Field(i).Interface()); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// Keys returns the registered keys in registration order.
func (t *Template) Keys() []string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Len returns the number of registered keys.
func (t *Template) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.keys)
}

// Kind returns the declared type of key.
func (t *Template) Kind(key string) (Kind, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	item, ok := t.items[key]
	return item.kind, ok
}

// Get returns the current value of key.
// The second return value indicates if the key is registered.
func (t *Template) Get(key string) (any, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	item, ok := t.items[key]
	if !ok {
		return nil, false
	}
	return item.currentValue, true
}

// Default returns the value key was registered with.
func (t *Template) Default(key string) (any, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	item, ok := t.items[key]
	if !ok {
		return nil, false
	}
	return item.defaultValue, true
}

// Set updates the current value of a registered key. The value must match the
// key's declared type; any Go numeric type is accepted for number keys.
func (t *Template) Set(key string, value any) error {
	kind, normalized, err := normalizeDefault(value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	item, ok := t.items[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotRegistered, key)
	}
	if item.kind != kind {
		return fmt.Errorf("set %s: cannot assign %s to %s key", key, kind, item.kind)
	}
	item.currentValue = normalized
	t.items[key] = item
	return nil
}

// Mandatory reports whether key was registered with an empty default.
func (t *Template) Mandatory(key string) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	item, ok := t.items[key]
	return ok && !present(item.defaultValue)
}

// Reset restores every key to its registered default.
func (t *Template) Reset() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for key, item := range t.items {
		item.currentValue = item.defaultValue
		t.items[key] = item
	}
}

// Values returns a snapshot of the current values.
func (t *Template) Values() map[string]any {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	values := make(map[string]any, len(t.items))
	for key, item := range t.items {
		values[key] = item.currentValue
	}
	return values
}

// Pairs returns the current values as ordered pairs. With no keys given all
// registered keys are returned; otherwise only keys that are exactly one of
// the given names, still in template order.
func (t *Template) Pairs(keys ...string) []Pair {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	var filter map[string]bool
	if len(keys) > 0 {
		filter = make(map[string]bool, len(keys))
		for _, k := range keys {
			filter[k] = true
		}
	}

	pairs := make([]Pair, 0, len(t.keys))
	for _, key := range t.keys {
		if filter != nil && !filter[key] {
			continue
		}
		pairs = append(pairs, Pair{Key: key, Value: t.items[key].currentValue})
	}
	return pairs
}

// Clone creates a deep copy of the template.
func (t *Template) Clone() *Template {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	clone := &Template{
		keys:  make([]string, len(t.keys)),
		items: make(map[string]templateItem, len(t.items)),
	}
	copy(clone.keys, t.keys)
	for key, item := range t.items {
		clone.items[key] = item
	}
	return clone
}

// Debug returns a formatted listing of every key with its type, current and
// default value.
func (t *Template) Debug() string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	var b strings.Builder
	b.WriteString("Template Debug Info:\n")
	for _, key := range t.keys {
		item := t.items[key]
		b.WriteString(fmt.Sprintf("  %s (%s):\n", key, item.kind))
		b.WriteString(fmt.Sprintf("    Current: %v\n", item.currentValue))
		b.WriteString(fmt.Sprintf("    Default: %v\n", item.defaultValue))
	}
	return b.String()
}

// isValidKey checks that key can be written as the left side of KEY=VALUE.
func isValidKey(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'

		if !(isLetter || isDigit || r == '_' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}
