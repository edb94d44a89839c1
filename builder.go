package envconfig

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ValidatorFunc validates a built Accessor.
// It should return an error if a setting is unusable.
type ValidatorFunc func(a *Accessor) error

// Builder provides a fluent interface for building an Accessor
type Builder struct {
	opts       Options
	required   []string
	validators []ValidatorFunc
	skipLoad   bool
}

// NewBuilder creates a builder over the process environment
func NewBuilder() *Builder {
	return &Builder{
		opts:       DefaultOptions(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithEnvironment fixes the environment name instead of reading the selector
func (b *Builder) WithEnvironment(env string) *Builder {
	b.opts.Environment = env
	return b
}

// WithSelector sets the variable naming the active environment
func (b *Builder) WithSelector(selector string) *Builder {
	b.opts.Selector = selector
	return b
}

// WithDir sets the directory searched for .env.<environment>
func (b *Builder) WithDir(dir string) *Builder {
	b.opts.Dir = dir
	return b
}

// WithFile sets an explicit settings file path
func (b *Builder) WithFile(path string) *Builder {
	b.opts.File = path
	return b
}

// WithStore sets the variable table
func (b *Builder) WithStore(store Store) *Builder {
	b.opts.Store = store
	return b
}

// WithLogger sets the diagnostics logger
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.opts.Logger = &log
	return b
}

// WithRequired adds keys that must have a value once loading is done
func (b *Builder) WithRequired(keys ...string) *Builder {
	b.required = append(b.required, keys...)
	return b
}

// WithValidator adds a validation function that runs at the end of Build.
// Validators run in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// SkipLoad builds the accessor without reading a settings file
func (b *Builder) SkipLoad() *Builder {
	b.skipLoad = true
	return b
}

// Build loads the settings file and creates the Accessor.
// A missing settings file is not fatal: the accessor is returned together
// with an error matching ErrSettingsNotFound.
func (b *Builder) Build() (*Accessor, error) {
	var (
		acc     *Accessor
		loadErr error
	)

	if b.skipLoad {
		acc = New(b.opts)
	} else {
		acc, _, loadErr = bootstrap(b.opts)
		if loadErr != nil && !errors.Is(loadErr, ErrSettingsNotFound) {
			return nil, loadErr
		}
	}

	if len(b.required) > 0 {
		if err := acc.RequireAll(b.required...); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	for _, validator := range b.validators {
		if err := validator(acc); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrSettingsNotFound or nil
	return acc, loadErr
}

// MustBuild is like Build but panics on error.
// A missing settings file does not panic.
func (b *Builder) MustBuild() *Accessor {
	acc, err := b.Build()
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		panic(fmt.Sprintf("envconfig build failed: %v", err))
	}
	return acc
}

// BuildAndBind builds the accessor and binds it into target
func (b *Builder) BuildAndBind(target any) (*Accessor, error) {
	acc, err := b.Build()
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		return nil, err
	}

	if bindErr := acc.Bind(target); bindErr != nil {
		return nil, fmt.Errorf("failed to bind configuration: %w", bindErr)
	}

	// ErrSettingsNotFound or nil
	return acc, err
}
