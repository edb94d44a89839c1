// Package envconfig provides typed, namespaced access to process environment
// variables for applications that keep one settings file per deployment
// environment (development, staging, production).
//
// Features:
//   - Environment selection through a selector variable (APP_ENV by default)
//   - Settings file loading from .env.<environment> without overriding existing variables
//   - Namespaced lookup: key "port" in "production" reads PRODUCTION_PORT
//   - Typed getters for strings, booleans, numbers, arrays and JSON objects
//   - Strict retrieval for required settings
//   - Struct binding and JSON decoding through mapstructure
//   - Injectable variable store for tests
//
// Quick Start:
//
//	// .env.production
//	// PRODUCTION_PORT=8080
//	// PRODUCTION_FEATURES=search,export
//
//	env := envconfig.Default()
//
//	port := env.NumberOr("port", 3000)
//	features := env.ArrayOr("features", ",", nil)
//	dsn, err := env.Require("database_url")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Builder:
//
//	env, err := envconfig.NewBuilder().
//	    WithSelector("APP_ENV").
//	    WithDir("/etc/myapp").
//	    WithRequired("database_url").
//	    Build()
//	if err != nil && !errors.Is(err, envconfig.ErrSettingsNotFound) {
//	    log.Fatal(err)
//	}
//
// Empty values:
// A variable set to the empty string is treated exactly like an unset one.
// Getters fall back to their default and Require reports it as missing.
//
// Thread Safety:
// An Accessor is immutable after construction. Loading is expected to finish
// before the accessor is handed out; reads may then run concurrently.
package envconfig
