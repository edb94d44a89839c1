package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"  nonsense ", zerolog.InfoLevel},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseLevel(c.in), "ParseLevel(%q)", c.in)
	}
}

func TestNew(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Options{Level: "info", Format: "json", Component: "loader", Writer: &buf})

		log.Info().Str("path", "/tmp/.env.test").Msg("loading settings")
		log.Debug().Msg("dropped")

		out := buf.String()
		assert.Contains(t, out, `"component":"loader"`)
		assert.Contains(t, out, `"path":"/tmp/.env.test"`)
		assert.Contains(t, out, `"message":"loading settings"`)
		assert.NotContains(t, out, "dropped")
	})

	t.Run("Console", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Options{Level: "debug", Format: "console", Writer: &buf})

		log.Debug().Str("key", "PORT").Msg("lookup")

		out := buf.String()
		assert.Contains(t, out, "lookup")
		assert.Contains(t, out, "PORT")
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", " ERROR ")
	t.Setenv("LOG_FORMAT", "JSON")

	opts := FromEnv()
	assert.Equal(t, "error", opts.Level)
	assert.Equal(t, "json", opts.Format)

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "info", FromEnv().Level)
}

func TestNamed(t *testing.T) {
	l := Named("envconfig")
	assert.NotNil(t, Get())
	// Named never panics and yields a usable logger
	l.Debug().Msg("named")
}
