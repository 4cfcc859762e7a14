// File: lixenwraith/envconfig/builder.go
package envconfig

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ValidatorFunc defines the signature for a function that can validate a resolved Template.
// It runs only after every mandatory key resolved.
type ValidatorFunc func(t *Template) error

// Builder provides a fluent interface for resolving a template
type Builder struct {
	tmpl       *Template
	opts       Options
	envPrefix  string
	envFile    string
	args       []string
	sources    []Source
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new resolution builder.
// Arguments are not read unless WithArgs is called.
func NewBuilder() *Builder {
	return &Builder{
		tmpl:       NewTemplate(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithTemplate resolves into t instead of a fresh template
func (b *Builder) WithTemplate(t *Template) *Builder {
	if t == nil {
		b.err = errors.New("nil template")
		return b
	}
	b.tmpl = t
	return b
}

// WithDefaults registers the fields of a struct holding default values
func (b *Builder) WithDefaults(defaults any) *Builder {
	if err := b.tmpl.RegisterStruct(defaults); err != nil && b.err == nil {
		b.err = fmt.Errorf("failed to register defaults: %w", err)
	}
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	return b
}

// WithEnvFile reads a .env file as a source below the environment.
// A missing file is not an error.
func (b *Builder) WithEnvFile(path string) *Builder {
	b.envFile = path
	return b
}

// WithArgs reads "--KEY=value" arguments as a source above the environment
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithSource adds a source consulted before the environment.
// Sources added earlier take precedence over later ones.
func (b *Builder) WithSource(s Source) *Builder {
	if s != nil {
		b.sources = append(b.sources, s)
	}
	return b
}

// WithMode sets error or halt semantics
func (b *Builder) WithMode(mode Mode) *Builder {
	b.opts.Mode = mode
	return b
}

// WithBooleans adds boolean spellings
func (b *Builder) WithBooleans(extra BoolTable) *Builder {
	b.opts.Booleans = b.opts.Booleans.With(extra)
	return b
}

// WithLogger sets the logger for debug output
func (b *Builder) WithLogger(logger logrus.FieldLogger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// source assembles the precedence chain:
// args > added sources > environment > env file
func (b *Builder) source() (Source, error) {
	var layered Layered

	if len(b.args) > 0 {
		argSource, err := ArgsSource(b.args)
		if err != nil {
			return nil, err
		}
		layered = append(layered, argSource)
	}

	layered = append(layered, b.sources...)
	layered = append(layered, EnvSource{Prefix: b.envPrefix})

	if b.envFile != "" {
		fileSource, err := ReadEnvFile(b.envFile)
		if err != nil && !errors.Is(err, ErrEnvFileNotFound) {
			return nil, err
		}
		if fileSource != nil {
			layered = append(layered, fileSource)
		}
	}

	return layered, nil
}

// Build resolves the template with all specified options
func (b *Builder) Build() (*Template, error) {
	if b.err != nil {
		return nil, b.err
	}

	src, err := b.source()
	if err != nil {
		return nil, err
	}

	opts := b.opts
	opts.Source = src
	if err := Resolve(b.tmpl, opts); err != nil {
		// Partially resolved template stays available to the caller
		return b.tmpl, err
	}

	for _, validator := range b.validators {
		if err := validator(b.tmpl); err != nil {
			err = fmt.Errorf("configuration validation failed: %w", err)
			if b.opts.Mode == ModeHalt {
				Halt(err)
			}
			return b.tmpl, err
		}
	}

	return b.tmpl, nil
}

// MustBuild is like Build but halts the process on error
func (b *Builder) MustBuild() *Template {
	b.opts.Mode = ModeHalt
	t, _ := b.Build()
	return t
}

// BuildAndScan builds and decodes the resolved values into the provided target struct pointer
func (b *Builder) BuildAndScan(target any) error {
	t, err := b.Build()
	if err != nil {
		return err
	}

	if err := t.Scan(target); err != nil {
		return fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return nil
}

// Quick resolves a struct of defaults against the environment (with prefix)
// and an optional .env file, then scans the result back into the struct.
// defaults must be a pointer to a struct.
func Quick(defaults any, envPrefix, envFile string) (*Template, error) {
	t, err := NewBuilder().
		WithDefaults(defaults).
		WithEnvPrefix(envPrefix).
		WithEnvFile(envFile).
		Build()
	if err != nil {
		return t, err
	}
	if err := t.Scan(defaults); err != nil {
		return t, err
	}
	return t, nil
}

