// FILE: lixenwraith/envconfig/resolve.go
package envconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Mode selects what happens when mandatory keys are missing
type Mode int

const (
	// ModeError returns a *MissingKeysError to the caller (default)
	ModeError Mode = iota
	// ModeHalt prints the error to stderr and exits the process with status 1
	ModeHalt
)

// Options configures a Resolve call
type Options struct {
	// Mode selects error or halt semantics. Default: ModeError
	Mode Mode

	// Source supplies raw values. Default: EnvSource{} (process environment)
	Source Source

	// Booleans adds spellings to DefaultBooleans; an entry here overrides a
	// default spelling
	Booleans BoolTable

	// Logger receives debug output about coercion fallbacks.
	// Default: logrus.StandardLogger()
	Logger logrus.FieldLogger
}

// Host hooks used by Halt. Tests replace them.
var (
	haltOutput io.Writer = os.Stderr
	haltExit             = os.Exit
)

// Resolve fills t from opts.Source, coercing each raw value to the type of
// the key's current value. Keys that resolve are overwritten in place even
// when the call fails. If any mandatory key has neither a usable source value
// nor a non-empty default, Resolve returns a *MissingKeysError naming all of
// them in template order. Under ModeHalt that error terminates the process.
func Resolve(t *Template, opts Options) error {
	err := resolve(t, opts)
	if err != nil && opts.Mode == ModeHalt {
		Halt(err)
	}
	return err
}

// MustResolve resolves t against opts.Source and halts the process on failure.
func MustResolve(t *Template, opts Options) {
	opts.Mode = ModeHalt
	Resolve(t, opts)
}

// Halt writes err's message to stderr and exits with status 1. A nil error
// is a no-op.
func Halt(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(haltOutput, err.Error())
	haltExit(1)
}

// resolvedValue is one key's outcome, computed without holding the lock
type resolvedValue struct {
	key   string
	value any
}

func resolve(t *Template, opts Options) error {
	if t == nil {
		return errors.New("resolve: nil template")
	}

	source := opts.Source
	if source == nil {
		source = EnvSource{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	table := DefaultBooleans().With(opts.Booleans)

	// -- 1. Snapshot the template (Read-Lock)
	t.mutex.RLock()
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	snapshot := make(map[string]templateItem, len(t.items))
	for k, item := range t.items {
		snapshot[k] = item
	}
	t.mutex.RUnlock()

	// -- 2. Coerce and classify (No Lock)
	var missing []string
	resolved := make([]resolvedValue, 0, len(keys))
	for _, key := range keys {
		item := snapshot[key]
		chosen := item.currentValue

		if raw, ok := source.Lookup(key); ok {
			if value, usable := coerce(item.kind, raw, table); usable {
				chosen = value
			} else if item.kind == KindBool && raw != "" {
				logger.Debugf("envconfig: unrecognized boolean %q for %s, keeping default %v", raw, key, item.currentValue)
			} else if item.kind == KindNumber && raw != "" {
				logger.Debugf("envconfig: non-numeric value %q for %s, keeping default %v", raw, key, item.currentValue)
			}
		}

		if !present(chosen) {
			missing = append(missing, key)
			continue
		}
		resolved = append(resolved, resolvedValue{key: key, value: chosen})
	}

	// -- 3. Write back (Write-Lock)
	t.mutex.Lock()
	for _, rv := range resolved {
		if item, exists := t.items[rv.key]; exists {
			item.currentValue = rv.value
			t.items[rv.key] = item
		}
	}
	t.mutex.Unlock()

	if len(missing) > 0 {
		logger.Debugf("envconfig: %d mandatory keys missing: %v", len(missing), missing)
		return &MissingKeysError{Keys: missing}
	}
	return nil
}
