package envconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Bind populates the struct pointed to by target from namespaced variables.
// Each exported field is read from the key in its `env` tag, or from the
// field name when untagged; `env:"-"` skips the field. The tag option
// "required" turns a missing value into a *MissingError. Fields without a
// value keep their current contents, so target may carry defaults.
// Field conversion is weakly typed: a bool field accepts "1" or "TRUE",
// which the Bool getter would report as false.
//
//	type Server struct {
//	    Port    int           `env:"PORT"`
//	    Hosts   []string      `env:"HOSTS"`
//	    Timeout time.Duration `env:"TIMEOUT"`
//	    DSN     string        `env:"DATABASE_URL,required"`
//	}
func (a *Accessor) Bind(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("bind requires a non-nil struct pointer, got %T", target)
	}
	if rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind requires a struct pointer, got %T", target)
	}

	t := rv.Elem().Type()
	data := make(map[string]any)
	var missing []error

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key, required, skip := parseEnvTag(field)
		if skip {
			continue
		}

		value, ok := a.Get(key)
		if !ok {
			if required {
				missing = append(missing, &MissingError{Key: key, EnvKey: a.Key(key)})
			}
			continue
		}
		data[key] = value
	}

	if len(missing) > 0 {
		return errors.Join(missing...)
	}
	if len(data) == 0 {
		return nil
	}

	if err := decodeInto(data, target, "env"); err != nil {
		return fmt.Errorf("failed to bind %T: %w", target, err)
	}
	return nil
}

// parseEnvTag extracts the key and options of a field's env tag
func parseEnvTag(field reflect.StructField) (key string, required, skip bool) {
	tag := field.Tag.Get("env")
	if tag == "-" {
		return "", false, true
	}

	key = field.Name
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		key = parts[0]
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "required" {
			required = true
		}
	}
	return key, required, false
}
