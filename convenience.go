package envconfig

import (
	"fmt"
	"sort"
	"strings"
)

// Quick bootstraps an Accessor from the process environment with the
// settings file looked up in dir ("" for the working directory).
// A missing settings file is reported through the returned error but the
// accessor is still usable.
func Quick(dir string, required ...string) (*Accessor, error) {
	return NewBuilder().
		WithDir(dir).
		WithRequired(required...).
		Build()
}

// MustQuick is like Quick but panics on any error except a missing settings file
func MustQuick(dir string, required ...string) *Accessor {
	return NewBuilder().
		WithDir(dir).
		WithRequired(required...).
		MustBuild()
}

// Debug returns a formatted listing of the environment and every variable
// in its namespace
func (a *Accessor) Debug() string {
	snapshot := a.Snapshot()

	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Environment Debug Info:\n")
	b.WriteString(fmt.Sprintf("Environment: %s\n", a.env))
	b.WriteString(fmt.Sprintf("Prefix: %s\n", NamespacedKey(a.env, "")))
	b.WriteString("Current values:\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %s (%s): %s\n", k, a.Key(k), snapshot[k]))
	}
	return b.String()
}
