package envconfig

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultSeparator splits array values when no separator is given
const DefaultSeparator = ","

// String retrieves the value for key as a string
func (a *Accessor) String(key string) (string, bool) {
	return a.Get(key)
}

// StringOr retrieves the value for key or def
func (a *Accessor) StringOr(key, def string) string {
	if s, ok := a.String(key); ok {
		return s
	}
	return def
}

// Bool retrieves the value for key as a boolean.
// Only "true" in any letter case is true; every other value is false.
func (a *Accessor) Bool(key string) (bool, bool) {
	s, ok := a.String(key)
	if !ok {
		return false, false
	}
	return strings.ToLower(s) == "true", true
}

// BoolOr retrieves the boolean for key or def
func (a *Accessor) BoolOr(key string, def bool) bool {
	if b, ok := a.Bool(key); ok {
		return b
	}
	return def
}

// Number retrieves the value for key as a float64.
// The longest numeric prefix is parsed and trailing text ignored;
// a value without a numeric prefix yields NaN.
func (a *Accessor) Number(key string) (float64, bool) {
	s, ok := a.String(key)
	if !ok {
		return 0, false
	}
	return parseLeadingFloat(s), true
}

// NumberOr retrieves the number for key or def
func (a *Accessor) NumberOr(key string, def float64) float64 {
	if f, ok := a.Number(key); ok {
		return f
	}
	return def
}

// Array retrieves the value for key split on DefaultSeparator
func (a *Accessor) Array(key string) ([]string, bool) {
	return a.ArraySep(key, DefaultSeparator)
}

// ArraySep retrieves the value for key split on sep
func (a *Accessor) ArraySep(key, sep string) ([]string, bool) {
	s, ok := a.String(key)
	if !ok {
		return nil, false
	}
	return strings.Split(s, sep), true
}

// ArrayOr retrieves the value for key split on sep, or def
func (a *Accessor) ArrayOr(key, sep string, def []string) []string {
	if parts, ok := a.ArraySep(key, sep); ok {
		return parts
	}
	return def
}

// Object retrieves the value for key parsed as JSON.
// Objects decode to map[string]any, arrays to []any, numbers to float64.
// Invalid JSON is logged and reported as absent.
func (a *Accessor) Object(key string) (any, bool) {
	s, ok := a.String(key)
	if !ok {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		a.log.Error().Err(err).Str("key", a.Key(key)).Msg("failed to parse object value")
		return nil, false
	}
	return v, true
}

// ObjectOr retrieves the parsed object for key or def
func (a *Accessor) ObjectOr(key string, def any) any {
	if v, ok := a.Object(key); ok {
		return v
	}
	return def
}

// parseLeadingFloat parses the longest prefix of s that forms a decimal
// number, after leading whitespace. Hex, octal and underscores are not
// recognized. Returns NaN when no prefix parses.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	// Exponent only counts when at least one digit follows it
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	// Out-of-range values come back as ±Inf or 0 alongside ErrRange
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
