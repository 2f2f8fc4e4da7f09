package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewWithWriterJSONCarriesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "info", Version: "1.4.0"}, &buf)

	l.Debug().Msg("hidden")
	l.Info().Str("owner_id", "owner-1").Str("kind", "cash_in").Msg("entry recorded")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "entry recorded", entry["message"])
	assert.Equal(t, "owner-1", entry["owner_id"])
	assert.Equal(t, "gcashledger", entry["service"])
	assert.Equal(t, "1.4.0", entry["version"])
	assert.NotContains(t, entry, "caller")
}

func TestNewWithWriterDebugAddsCaller(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "debug"}, &buf)
	l.Debug().Msg("fee computed")

	assert.Contains(t, buf.String(), `"caller":`)
}

func TestNewWithWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "debug", Format: "console"}, &buf)
	l.Info().Msg("reconciled")

	out := buf.String()
	assert.Contains(t, out, "reconciled")
	assert.False(t, strings.HasPrefix(out, "{"))
}

func TestSetGlobal(t *testing.T) {
	prevLogger, prevDefault := log.Logger, zerolog.DefaultContextLogger
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.DefaultContextLogger = prevDefault
	})

	var buf bytes.Buffer
	SetGlobal(NewWithWriter(Config{Level: "info"}, &buf))
	log.Ctx(context.Background()).Info().Msg("relay tick")

	assert.Contains(t, buf.String(), "relay tick")
}
