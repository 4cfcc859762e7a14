// FILE: lixenwraith/envconfig/errors.go
package envconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingKeys is wrapped by MissingKeysError
	ErrMissingKeys = errors.New("missing mandatory keys")
	// ErrInvalidBoolean is wrapped by InvalidBooleanError
	ErrInvalidBoolean = errors.New("invalid boolean")
	// ErrEnvFileNotFound is returned when an env file does not exist
	ErrEnvFileNotFound = errors.New("env file not found")
	// ErrUnsupportedType is returned when a default is not a number, bool or string
	ErrUnsupportedType = errors.New("unsupported default type")
	// ErrInvalidKey is returned for keys that cannot be written as KEY=VALUE
	ErrInvalidKey = errors.New("invalid key")
	// ErrKeyNotRegistered is returned when a key is not part of the template
	ErrKeyNotRegistered = errors.New("key not registered")
)

// MissingKeysError reports every mandatory key that could not be resolved,
// in the order they were detected.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("Missing %s in env", strings.Join(e.Keys, ", "))
}

func (e *MissingKeysError) Unwrap() error {
	return ErrMissingKeys
}

// InvalidBooleanError carries the token that matched no boolean literal.
type InvalidBooleanError struct {
	Value string
}

func (e *InvalidBooleanError) Error() string {
	return fmt.Sprintf("invalid boolean value %q", e.Value)
}

func (e *InvalidBooleanError) Unwrap() error {
	return ErrInvalidBoolean
}
