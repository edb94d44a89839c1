package envconfig

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Store is the variable table the accessor reads and the loader writes.
type Store interface {
	// Lookup returns the value for key and whether it is present.
	// A non-nil error means the lookup itself failed, not that the key is absent.
	Lookup(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(key, value string) error

	// Keys returns every key currently present, sorted
	Keys() []string
}

// OSStore is the process environment
type OSStore struct{}

// Lookup implements Store using os.LookupEnv
func (OSStore) Lookup(key string) (string, bool, error) {
	value, ok := os.LookupEnv(key)
	return value, ok, nil
}

// Set implements Store using os.Setenv
func (OSStore) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set environment variable %q: %w", key, err)
	}
	return nil
}

// Keys implements Store using os.Environ
func (OSStore) Keys() []string {
	environ := os.Environ()
	keys := make([]string, 0, len(environ))
	for _, kv := range environ {
		key, _, found := strings.Cut(kv, "=")
		if !found || key == "" {
			// Windows keeps per-drive entries like "=C:=C:\"
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MapStore is an in-memory Store, safe for concurrent use.
type MapStore struct {
	values map[string]string
	mutex  sync.RWMutex
}

// NewMapStore creates a MapStore seeded with a copy of initial
func NewMapStore(initial map[string]string) *MapStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MapStore{values: values}
}

// Lookup implements Store
func (s *MapStore) Lookup(key string) (string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set implements Store
func (s *MapStore) Set(key, value string) error {
	if key == "" || strings.ContainsRune(key, '=') {
		return fmt.Errorf("invalid variable name %q", key)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

// Keys implements Store
func (s *MapStore) Keys() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
