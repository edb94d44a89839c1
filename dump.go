package envconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Dump
const (
	FormatDotenv = "dotenv"
	FormatTOML   = "toml"
	FormatYAML   = "yaml"
	FormatJSON   = "json"
)

// Snapshot returns every variable in the accessor's namespace keyed by its
// bare name (PRODUCTION_PORT becomes PORT). Empty values are left out, as
// Get would report them absent.
func (a *Accessor) Snapshot() map[string]string {
	prefix := NamespacedKey(a.env, "")
	snapshot := make(map[string]string)

	for _, envKey := range a.store.Keys() {
		bare, found := strings.CutPrefix(envKey, prefix)
		if !found || bare == "" {
			continue
		}
		value, ok, err := a.store.Lookup(envKey)
		if err != nil {
			a.log.Error().Err(err).Str("key", envKey).Msg("variable lookup failed")
			continue
		}
		if ok && value != "" {
			snapshot[bare] = value
		}
	}
	return snapshot
}

// Dump writes the snapshot to w in the given format.
// The dotenv form uses bare keys and can seed another environment's file
// after renaming.
func (a *Accessor) Dump(w io.Writer, format string) error {
	snapshot := a.Snapshot()

	switch strings.ToLower(format) {
	case FormatDotenv, "env", "":
		out, err := godotenv.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot to dotenv: %w", err)
		}
		if out != "" {
			out += "\n"
		}
		_, err = io.WriteString(w, out)
		return err

	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(snapshot); err != nil {
			return fmt.Errorf("failed to marshal snapshot to TOML: %w", err)
		}
		return nil

	case FormatYAML, "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(snapshot); err != nil {
			return fmt.Errorf("failed to marshal snapshot to YAML: %w", err)
		}
		return encoder.Close()

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snapshot); err != nil {
			return fmt.Errorf("failed to marshal snapshot to JSON: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
