// Command envcfg inspects namespaced environment settings from the shell.
//
//	APP_ENV=production envcfg get port --type number
//	envcfg --env staging require database_url api_key
//	envcfg dump --format yaml
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lixenwraith/envconfig"
	"github.com/lixenwraith/envconfig/internal/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr, envconfig.OSStore{}); err != nil {
		fmt.Fprintf(os.Stderr, "envcfg: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and executes one command against store
func run(args []string, stdout, stderr io.Writer, store envconfig.Store) error {
	app := kingpin.New("envcfg", "Inspect namespaced environment settings")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(nil)

	env := app.Flag("env", "Environment name (default: value of the selector variable)").String()
	selector := app.Flag("selector", "Variable naming the active environment").Default(envconfig.DefaultSelector).String()
	dir := app.Flag("dir", "Directory holding .env.<environment>").String()
	file := app.Flag("file", "Explicit settings file path").String()
	noLoad := app.Flag("no-load", "Do not read a settings file").Bool()
	logLevel := app.Flag("log-level", "Diagnostics level").Default("warn").String()
	logFormat := app.Flag("log-format", "Diagnostics format (console, json)").Default("console").Enum("console", "json")

	keyCmd := app.Command("key", "Print the variable name consulted for a key")
	keyArg := keyCmd.Arg("key", "Setting key").Required().String()

	getCmd := app.Command("get", "Print a setting")
	getKey := getCmd.Arg("key", "Setting key").Required().String()
	getType := getCmd.Flag("type", "Value type").Default("string").Enum("string", "bool", "number", "array", "object")
	getSep := getCmd.Flag("sep", "Array separator").Default(envconfig.DefaultSeparator).String()
	var defaultSet bool
	getDefault := getCmd.Flag("default", "Value printed when the setting is absent").IsSetByUser(&defaultSet).String()

	requireCmd := app.Command("require", "Fail unless every key has a value")
	requireKeys := requireCmd.Arg("keys", "Setting keys").Required().Strings()

	dumpCmd := app.Command("dump", "Print every setting of the environment")
	dumpFormat := dumpCmd.Flag("format", "Output format").Default(envconfig.FormatDotenv).
		Enum(envconfig.FormatDotenv, envconfig.FormatTOML, envconfig.FormatYAML, envconfig.FormatJSON)

	command, err := app.Parse(args)
	if err != nil {
		return err
	}
	if command == "" {
		// --help already printed
		return nil
	}

	log := logger.New(logger.Options{
		Level:     *logLevel,
		Format:    *logFormat,
		Component: "envcfg",
		Writer:    stderr,
	})

	builder := envconfig.NewBuilder().
		WithStore(store).
		WithLogger(log).
		WithSelector(*selector).
		WithEnvironment(*env).
		WithDir(*dir).
		WithFile(*file)
	if *noLoad {
		builder = builder.SkipLoad()
	}

	acc, err := builder.Build()
	if err != nil && !errors.Is(err, envconfig.ErrSettingsNotFound) {
		return err
	}

	switch command {
	case keyCmd.FullCommand():
		_, err := fmt.Fprintln(stdout, acc.Key(*keyArg))
		return err

	case getCmd.FullCommand():
		out, ok := formatValue(acc, *getKey, *getType, *getSep)
		if !ok {
			if !defaultSet {
				return fmt.Errorf("%w: %s", envconfig.ErrNotSet, acc.Key(*getKey))
			}
			out = *getDefault
		}
		_, err := fmt.Fprintln(stdout, out)
		return err

	case requireCmd.FullCommand():
		return acc.RequireAll(*requireKeys...)

	case dumpCmd.FullCommand():
		return acc.Dump(stdout, *dumpFormat)
	}

	return fmt.Errorf("unknown command %q", command)
}

// formatValue renders the typed value of key for printing
func formatValue(acc *envconfig.Accessor, key, typ, sep string) (string, bool) {
	switch typ {
	case "bool":
		b, ok := acc.Bool(key)
		return strconv.FormatBool(b), ok

	case "number":
		f, ok := acc.Number(key)
		return strconv.FormatFloat(f, 'g', -1, 64), ok

	case "array":
		parts, ok := acc.ArraySep(key, sep)
		return strings.Join(parts, "\n"), ok

	case "object":
		v, ok := acc.Object(key)
		if !ok {
			return "", false
		}
		out, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(out), true

	default:
		return acc.String(key)
	}
}
