package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	SetupWriter(&buf, "debug", "json")

	log.Ctx(context.Background()).Debug().Str("mode", "MEN").Msg("analyzing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "MEN", entry["mode"])
	assert.Equal(t, "analyzing", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestSetupWriter_Level(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	SetupWriter(&buf, "warn", "json")
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	SetupWriter(&buf, "bogus", "json")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupWriter_Console(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	SetupWriter(&buf, "info", "console")
	log.Info().Msg("server started")

	assert.Contains(t, buf.String(), "server started")
	assert.False(t, json.Valid(buf.Bytes()))
}
