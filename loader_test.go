package envconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSettings creates dir/.env.<env> with content
func writeSettings(t *testing.T, dir, env, content string) string {
	t.Helper()
	path := SettingsPath(dir, env)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestSettingsPath tests settings file naming
func TestSettingsPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv/app", ".env.production"), SettingsPath("/srv/app", "production"))
	assert.Equal(t, filepath.Join(".", ".env.development"), SettingsPath(".", DefaultEnvironment))
}

// TestLoad tests parsing and additive merging
func TestLoad(t *testing.T) {
	t.Run("AppliesAndSkips", func(t *testing.T) {
		dir := t.TempDir()
		path := writeSettings(t, dir, "staging", `
# database
STAGING_DATABASE_URL=postgres://db/app
export STAGING_PORT=8080
STAGING_GREETING="hello world"

STAGING_EXISTING=from-file
`)
		store := NewMapStore(map[string]string{"STAGING_EXISTING": "from-process"})

		result, err := Load(store, path)
		require.NoError(t, err)

		assert.Equal(t, path, result.Path)
		assert.Equal(t, []string{"STAGING_DATABASE_URL", "STAGING_GREETING", "STAGING_PORT"}, result.Applied)
		assert.Equal(t, []string{"STAGING_EXISTING"}, result.Skipped)

		v, _, _ := store.Lookup("STAGING_EXISTING")
		assert.Equal(t, "from-process", v, "existing variables must not be overwritten")

		v, _, _ = store.Lookup("STAGING_GREETING")
		assert.Equal(t, "hello world", v)

		v, _, _ = store.Lookup("STAGING_PORT")
		assert.Equal(t, "8080", v)
	})

	t.Run("ExistingEmptyNotOverwritten", func(t *testing.T) {
		dir := t.TempDir()
		path := writeSettings(t, dir, "test", "TEST_NAME=file\n")
		store := NewMapStore(map[string]string{"TEST_NAME": ""})

		result, err := Load(store, path)
		require.NoError(t, err)
		assert.Empty(t, result.Applied)

		v, ok, _ := store.Lookup("TEST_NAME")
		assert.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("MissingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env.nowhere")
		result, err := Load(NewMapStore(nil), path)
		assert.ErrorIs(t, err, ErrSettingsNotFound)
		assert.Contains(t, err.Error(), path)
		assert.Empty(t, result.Applied)
	})

	t.Run("ParseError", func(t *testing.T) {
		dir := t.TempDir()
		path := writeSettings(t, dir, "broken", "BAD-KEY=value\n")
		store := NewMapStore(nil)

		_, err := Load(store, path)
		assert.ErrorIs(t, err, ErrSettingsParse)
		assert.Empty(t, store.Keys())
	})

	t.Run("DirectoryIsNotAFile", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(SettingsPath(dir, "odd"), 0755))

		_, err := Load(NewMapStore(nil), SettingsPath(dir, "odd"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrSettingsNotFound)
	})

	t.Run("OSStore", func(t *testing.T) {
		t.Setenv("ENVCONFIG_LOADER_EXISTING", "process")
		// Registers cleanup; the file is what sets the value
		t.Setenv("ENVCONFIG_LOADER_NEW", "")
		os.Unsetenv("ENVCONFIG_LOADER_NEW")

		dir := t.TempDir()
		path := writeSettings(t, dir, "loader", "ENVCONFIG_LOADER_EXISTING=file\nENVCONFIG_LOADER_NEW=file\n")

		_, err := Load(OSStore{}, path)
		require.NoError(t, err)
		assert.Equal(t, "process", os.Getenv("ENVCONFIG_LOADER_EXISTING"))
		assert.Equal(t, "file", os.Getenv("ENVCONFIG_LOADER_NEW"))
	})
}

// TestBootstrap tests the run-once load-then-construct sequence
func TestBootstrap(t *testing.T) {
	t.Run("LoadsSelectedEnvironment", func(t *testing.T) {
		dir := t.TempDir()
		path := writeSettings(t, dir, "staging", "STAGING_PORT=9090\nPRODUCTION_PORT=80\n")
		store := NewMapStore(map[string]string{"APP_ENV": "staging"})

		var buf bytes.Buffer
		log := zerolog.New(&buf)
		acc := Bootstrap(Options{Dir: dir, Store: store, Logger: &log})

		assert.Equal(t, "staging", acc.Environment())
		assert.Equal(t, 9090.0, acc.NumberOr("port", 0))

		out := buf.String()
		assert.Contains(t, out, "loading settings file")
		assert.Contains(t, out, path)
		assert.NotContains(t, out, "failed to load settings file")
	})

	t.Run("DefaultEnvironment", func(t *testing.T) {
		dir := t.TempDir()
		writeSettings(t, dir, "development", "DEVELOPMENT_DEBUG=true\n")

		var buf bytes.Buffer
		log := zerolog.New(&buf)
		acc := Bootstrap(Options{Dir: dir, Store: NewMapStore(nil), Logger: &log})

		assert.Equal(t, "development", acc.Environment())
		assert.True(t, acc.BoolOr("debug", false))
	})

	t.Run("MissingFileIsNotFatal", func(t *testing.T) {
		dir := t.TempDir()
		store := NewMapStore(map[string]string{
			"APP_ENV":         "production",
			"PRODUCTION_NAME": "svc",
		})

		var buf bytes.Buffer
		log := zerolog.New(&buf)

		var acc *Accessor
		require.NotPanics(t, func() {
			acc = Bootstrap(Options{Dir: dir, Store: store, Logger: &log})
		})

		out := buf.String()
		assert.Contains(t, out, "loading settings file")
		assert.Contains(t, out, "failed to load settings file")
		assert.Contains(t, out, SettingsPath(dir, "production"))

		assert.Equal(t, "svc", acc.GetOr("name", ""))
		_, ok := acc.Get("port")
		assert.False(t, ok)
	})

	t.Run("ExplicitFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.env")
		require.NoError(t, os.WriteFile(path, []byte("QA_MODE=strict\n"), 0644))

		var buf bytes.Buffer
		log := zerolog.New(&buf)
		acc := Bootstrap(Options{Environment: "qa", File: path, Store: NewMapStore(nil), Logger: &log})

		assert.Equal(t, "strict", acc.GetOr("mode", ""))
	})
}

// TestDefault tests the process-wide accessor
func TestDefault(t *testing.T) {
	t.Setenv("APP_ENV", "envconfigdefault")
	t.Setenv("ENVCONFIGDEFAULT_ANSWER", "42")

	acc := Default()
	require.NotNil(t, acc)
	assert.Same(t, acc, Default())
	assert.Equal(t, "envconfigdefault", acc.Environment())
	assert.Equal(t, 42.0, acc.NumberOr("answer", 0))
}
