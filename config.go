package envconfig

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/envconfig/internal/logger"
)

const (
	// DefaultSelector names the variable holding the active environment
	DefaultSelector = "APP_ENV"

	// DefaultEnvironment is used when the selector variable is unset or empty
	DefaultEnvironment = "development"

	// SettingsFilePrefix prefixes the environment name to form the settings file name
	SettingsFilePrefix = ".env."
)

// Options configures how an Accessor is created
type Options struct {
	// Environment fixes the environment name. If empty it is read from Selector.
	Environment string

	// Selector is the variable naming the active environment
	// Default: APP_ENV
	Selector string

	// Dir is the directory holding the settings file
	// Default: the working directory
	Dir string

	// File overrides the settings file path computed from Dir and the environment
	File string

	// Store is the variable table. Default: OSStore
	Store Store

	// Logger receives diagnostics. Default: the package root logger
	Logger *zerolog.Logger
}

// DefaultOptions returns options reading the process environment
func DefaultOptions() Options {
	return Options{
		Selector: DefaultSelector,
		Store:    OSStore{},
	}
}

// withDefaults fills unset fields
func (o Options) withDefaults() Options {
	if o.Selector == "" {
		o.Selector = DefaultSelector
	}
	if o.Store == nil {
		o.Store = OSStore{}
	}
	if o.Logger == nil {
		l := logger.Named("envconfig")
		o.Logger = &l
	}
	if o.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			o.Dir = wd
		} else {
			o.Dir = "."
		}
	}
	return o
}

// Accessor reads namespaced variables from a Store.
// The environment name is fixed at construction.
type Accessor struct {
	env   string
	store Store
	log   zerolog.Logger
}

// New creates an Accessor without loading any settings file.
// Use Bootstrap or the Builder to load the settings file first.
func New(opts Options) *Accessor {
	opts = opts.withDefaults()

	env := opts.Environment
	if env == "" {
		env = ResolveEnvironment(opts.Store, opts.Selector)
	}

	return &Accessor{
		env:   env,
		store: opts.Store,
		log:   opts.Logger.With().Str("environment", env).Logger(),
	}
}

// ResolveEnvironment reads the environment name from selector,
// returning DefaultEnvironment when it is unset, empty or unreadable.
func ResolveEnvironment(store Store, selector string) string {
	value, ok, err := store.Lookup(selector)
	if err != nil || !ok || value == "" {
		return DefaultEnvironment
	}
	return value
}

// NamespacedKey returns UPPER(env) + "_" + UPPER(key)
func NamespacedKey(env, key string) string {
	return strings.ToUpper(env) + "_" + strings.ToUpper(key)
}

// Environment returns the environment name
func (a *Accessor) Environment() string {
	return a.env
}

// Key returns the variable name consulted for key
func (a *Accessor) Key(key string) string {
	return NamespacedKey(a.env, key)
}

// Get returns the value for key. Unset and empty values both report false.
// Store failures are logged and reported as absent.
func (a *Accessor) Get(key string) (string, bool) {
	envKey := a.Key(key)

	value, ok, err := a.store.Lookup(envKey)
	if err != nil {
		a.log.Error().Err(err).Str("key", envKey).Msg("variable lookup failed")
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// GetOr returns the value for key or def
func (a *Accessor) GetOr(key, def string) string {
	if value, ok := a.Get(key); ok {
		return value
	}
	return def
}

// RequireOptions controls strict retrieval
type RequireOptions struct {
	// ThrowError makes a missing value an error. When false a missing
	// value is returned as "" with a nil error.
	ThrowError bool
}

// DefaultRequireOptions returns options that fail on missing values
func DefaultRequireOptions() RequireOptions {
	return RequireOptions{ThrowError: true}
}

// Require returns the value for key or a *MissingError naming it.
// Empty values count as missing.
func (a *Accessor) Require(key string) (string, error) {
	return a.RequireWithOptions(key, DefaultRequireOptions())
}

// RequireWithOptions is Require with explicit options
func (a *Accessor) RequireWithOptions(key string, opts RequireOptions) (string, error) {
	value, ok := a.Get(key)
	if !ok && opts.ThrowError {
		return "", &MissingError{Key: key, EnvKey: a.Key(key)}
	}
	return value, nil
}

// MustRequire is like Require but panics if the value is missing
func (a *Accessor) MustRequire(key string) string {
	value, err := a.Require(key)
	if err != nil {
		panic(err.Error())
	}
	return value
}

// RequireAll checks every key and joins the errors of those missing
func (a *Accessor) RequireAll(keys ...string) error {
	var missing []error
	for _, key := range keys {
		if _, err := a.Require(key); err != nil {
			missing = append(missing, err)
		}
	}
	return errors.Join(missing...)
}
