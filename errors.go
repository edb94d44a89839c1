package envconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrSettingsNotFound is returned when the settings file does not exist.
	// It is never fatal: the process keeps whatever variables it already has.
	ErrSettingsNotFound = errors.New("settings file not found")

	// ErrSettingsParse is returned when the settings file is not valid dotenv
	ErrSettingsParse = errors.New("failed to parse settings file")

	// ErrMissingRequired is matched by every *MissingError
	ErrMissingRequired = errors.New("missing required configuration")

	// ErrNotSet is returned by Decode when the key has no value
	ErrNotSet = errors.New("configuration value not set")

	// ErrUnknownFormat is returned by Dump for unsupported output formats
	ErrUnknownFormat = errors.New("unknown output format")
)

// MissingError reports a required key that has no value.
type MissingError struct {
	Key    string // key as requested by the caller
	EnvKey string // namespaced variable that was consulted
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %s (variable %s)", ErrMissingRequired, e.Key, e.EnvKey)
}

// Is makes errors.Is(err, ErrMissingRequired) hold for any MissingError
func (e *MissingError) Is(target error) bool {
	return target == ErrMissingRequired
}
