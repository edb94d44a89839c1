package envconfig

import (
	"os"
	"path/filepath"
)

// FindSettingsFile returns the first existing .env.<env> in dirs, checked in
// order. Only one file is ever selected; later directories are not merged.
func FindSettingsFile(env string, dirs ...string) (string, bool) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := SettingsPath(dir, env)
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			return path, true
		}
	}
	return "", false
}

// WithSearchPaths looks for .env.<environment> in each directory in order,
// then in the working directory, and uses the first one found.
// The environment is resolved now, so call it after WithEnvironment,
// WithSelector and WithStore.
func (b *Builder) WithSearchPaths(dirs ...string) *Builder {
	store := b.opts.Store
	if store == nil {
		store = OSStore{}
	}
	selector := b.opts.Selector
	if selector == "" {
		selector = DefaultSelector
	}

	env := b.opts.Environment
	if env == "" {
		env = ResolveEnvironment(store, selector)
	}

	searchPaths := append([]string{}, dirs...)
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	if path, found := FindSettingsFile(env, searchPaths...); found {
		b.opts.File = filepath.Clean(path)
	}

	// No file found is not an error: Build reports ErrSettingsNotFound for
	// the default location
	return b
}
