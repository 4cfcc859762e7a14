// File: lixenwraith/envconfig/io.go
package envconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultEnvFile is the file Save and Append use when none is given
const DefaultEnvFile = ".env"

// SaveOptions configures Save and Append
type SaveOptions struct {
	// File is the .env file to update. Default: DefaultEnvFile
	File string

	// Keys limits the write to these template keys (exact match).
	// Save writes every key when empty; Append requires at least one.
	Keys []string

	// Logger receives debug output. Default: logrus.StandardLogger()
	Logger logrus.FieldLogger
}

func (o SaveOptions) withDefaults() SaveOptions {
	if o.File == "" {
		o.File = DefaultEnvFile
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// Save merges the current values of t into opts.File. A missing file is
// treated as empty. The file is rewritten atomically, and only when its
// content changes. Returns true if the file was written.
func Save(t *Template, opts SaveOptions) (bool, error) {
	opts = opts.withDefaults()

	if err := checkKeys(t, opts.Keys); err != nil {
		return false, err
	}

	existing, err := readText(opts.File)
	if err != nil {
		return false, err
	}

	updated := Merge(existing, t.Pairs(opts.Keys...))
	if updated == existing {
		opts.Logger.Debugf("envconfig: %s unchanged, skipping write", opts.File)
		return false, nil
	}

	if err := atomicWriteFile(opts.File, []byte(updated)); err != nil {
		return false, fmt.Errorf("failed to save env file '%s': %w", opts.File, err)
	}
	opts.Logger.Debugf("envconfig: wrote %s", opts.File)
	return true, nil
}

// Append adds the named keys of t to the end of opts.File as new lines,
// without checking whether they are already assigned there.
func Append(t *Template, opts SaveOptions) error {
	opts = opts.withDefaults()

	if len(opts.Keys) == 0 {
		return errors.New("append requires at least one key")
	}
	if err := checkKeys(t, opts.Keys); err != nil {
		return err
	}

	text := AppendText(t.Pairs(opts.Keys...))

	// Keep the previous last line intact
	existing, err := readText(opts.File)
	if err != nil {
		return err
	}
	if existing != "" && existing[len(existing)-1] != '\n' {
		text = "\n" + text
	}

	f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open env file '%s': %w", opts.File, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to env file '%s': %w", opts.File, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close env file '%s': %w", opts.File, err)
	}

	opts.Logger.Debugf("envconfig: appended %v to %s", opts.Keys, opts.File)
	return nil
}

func checkKeys(t *Template, keys []string) error {
	for _, k := range keys {
		if _, ok := t.Get(k); !ok {
			return fmt.Errorf("%w: %s", ErrKeyNotRegistered, k)
		}
	}
	return nil
}

// readText returns the whole file, or "" if it does not exist.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read env file '%s': %w", path, err)
	}
	return string(data), nil
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
