package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T, fn func()) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	fn()

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	return decoded
}

func TestRecordDuration_TagsCorrelationID(t *testing.T) {
	out := captureLog(t, func() {
		RecordDuration(EventCompileGrammar, "compile_abc123", 5*time.Millisecond)
	})

	assert.Equal(t, EventCompileGrammar, out["event"])
	assert.Equal(t, "compile_abc123", out["correlation_id"])
}

func TestRecordValidation_ReflectsOutcome(t *testing.T) {
	out := captureLog(t, func() {
		RecordValidation("validate_xyz", false, 3, time.Millisecond)
	})

	assert.Equal(t, EventValidate, out["event"])
	assert.Equal(t, false, out["valid"])
	assert.EqualValues(t, 3, out["diagnostics"])
}

func TestSetLevel_SuppressesAndRestoresDebugEvents(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prevLevel)

	SetLevel(zerolog.InfoLevel)
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	log.Debug().Msg("should be suppressed")
	log.Logger = prev
	assert.Empty(t, buf.Bytes())

	SetLevel(zerolog.DebugLevel)
	buf.Reset()
	log.Logger = zerolog.New(&buf)
	log.Debug().Msg("should be emitted")
	log.Logger = prev
	assert.NotEmpty(t, buf.Bytes())
}
