package envconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/joho/godotenv"
)

// LoadResult describes what Load did with a settings file
type LoadResult struct {
	Path    string
	Applied []string // keys written to the store
	Skipped []string // keys already present in the store, left untouched
}

// SettingsPath returns <dir>/.env.<env>
func SettingsPath(dir, env string) string {
	return filepath.Join(dir, SettingsFilePrefix+env)
}

// Load parses the dotenv file at path and writes each variable not already
// present in store. Existing variables are never overwritten.
func Load(store Store, path string) (LoadResult, error) {
	result := LoadResult{Path: path}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
		}
		return result, fmt.Errorf("failed to open settings file '%s': %w", path, err)
	}
	defer file.Close()

	values, err := godotenv.Parse(file)
	if err != nil {
		return result, fmt.Errorf("%w '%s': %w", ErrSettingsParse, path, err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var setErrors []error
	for _, key := range keys {
		_, exists, err := store.Lookup(key)
		if err != nil {
			setErrors = append(setErrors, fmt.Errorf("failed to check variable %q: %w", key, err))
			continue
		}
		if exists {
			result.Skipped = append(result.Skipped, key)
			continue
		}
		if err := store.Set(key, values[key]); err != nil {
			setErrors = append(setErrors, err)
			continue
		}
		result.Applied = append(result.Applied, key)
	}

	return result, errors.Join(setErrors...)
}

// Bootstrap resolves the environment, loads its settings file into the
// store and returns an Accessor over it. Load failures are logged, never
// returned: the accessor then sees only the variables already present.
func Bootstrap(opts Options) *Accessor {
	acc, _, _ := bootstrap(opts)
	return acc
}

// bootstrap is shared by Bootstrap and Builder.Build
func bootstrap(opts Options) (*Accessor, LoadResult, error) {
	opts = opts.withDefaults()

	if opts.Environment == "" {
		opts.Environment = ResolveEnvironment(opts.Store, opts.Selector)
	}

	path := opts.File
	if path == "" {
		path = SettingsPath(opts.Dir, opts.Environment)
	}

	opts.Logger.Info().Str("path", path).Str("environment", opts.Environment).Msg("loading settings file")

	result, err := Load(opts.Store, path)
	if err != nil {
		opts.Logger.Error().Err(err).Str("path", path).Msg("failed to load settings file")
	} else {
		opts.Logger.Debug().
			Str("path", path).
			Int("applied", len(result.Applied)).
			Int("skipped", len(result.Skipped)).
			Msg("settings file loaded")
	}

	return New(opts), result, err
}

var (
	defaultOnce     sync.Once
	defaultAccessor *Accessor
)

// Default returns the process-wide Accessor, bootstrapped from the
// process environment and working directory on first use.
func Default() *Accessor {
	defaultOnce.Do(func() {
		defaultAccessor = Bootstrap(DefaultOptions())
	})
	return defaultAccessor
}
