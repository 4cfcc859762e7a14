// FILE: lixenwraith/envconfig/source.go
package envconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Source supplies raw string values by key
type Source interface {
	Lookup(key string) (string, bool)
}

// MapSource is a Source backed by a plain map
type MapSource map[string]string

// Lookup implements Source
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvSource reads the process environment. Prefix is prepended to every key,
// so Prefix "MYAPP_" looks up PORT as MYAPP_PORT.
type EnvSource struct {
	Prefix string
}

// Lookup implements Source
func (e EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(e.Prefix + key)
}

// Layered consults its sources in order; the first one holding the key wins.
type Layered []Source

// Lookup implements Source
func (l Layered) Lookup(key string) (string, bool) {
	for _, s := range l {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// ReadEnvFile parses a .env file into a MapSource without touching the
// process environment. A missing file returns ErrEnvFileNotFound.
func ReadEnvFile(path string) (MapSource, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrEnvFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to parse env file '%s': %w", path, err)
	}
	return MapSource(values), nil
}

// ArgsSource collects "--KEY=value" and "--KEY value" arguments. A flag with
// no value that is followed by another flag or ends the list reads as "true".
// Non-flag arguments and a bare "--" are skipped.
func ArgsSource(args []string) (MapSource, error) {
	result := make(MapSource)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			// Skip non-flag arguments
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			i++
			continue
		}

		var key, value string
		if k, v, found := strings.Cut(argContent, "="); found {
			key, value = k, v
			i++
		} else {
			key = argContent
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				value = "true"
				i++
			} else {
				value = args[i+1]
				i += 2
			}
		}

		if !isValidKey(key) {
			return nil, fmt.Errorf("%w: command-line key %q", ErrInvalidKey, key)
		}
		result[key] = value
	}

	return result, nil
}
