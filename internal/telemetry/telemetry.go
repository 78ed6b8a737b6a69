// Package telemetry emits structured, one-event-per-operation records for
// each facade call — compile.grammar, compile.template, compile.hints, and
// validate.run — distinct from internal/logging's human-readable
// troubleshooting stream. This is the operational layer a background or
// service process would scrape; the logger is for a developer watching a
// terminal.
package telemetry

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Event names emitted by the facade.
const (
	EventCompileGrammar = "compile.grammar"
	EventRenderTemplate = "compile.template"
	EventRenderHints    = "compile.hints"
	EventValidate       = "validate.run"
)

// RecordDuration emits a structured event with the elapsed time of a facade
// call, tagged with its correlation ID.
func RecordDuration(event, correlationID string, elapsed time.Duration) {
	log.Info().
		Str("event", event).
		Str("correlation_id", correlationID).
		Dur("elapsed", elapsed).
		Msg("facade call completed")
}

// RecordValidation emits a structured event describing a validation
// outcome, including how many diagnostics were produced.
func RecordValidation(correlationID string, valid bool, diagnosticCount int, elapsed time.Duration) {
	ev := log.Info()
	if !valid {
		ev = log.Warn()
	}
	ev.Str("event", EventValidate).
		Str("correlation_id", correlationID).
		Bool("valid", valid).
		Int("diagnostics", diagnosticCount).
		Dur("elapsed", elapsed).
		Msg("validation completed")
}

// SetLevel adjusts the global zerolog level, mirroring the verbosity knob
// exposed by internal/logging for the troubleshooting stream.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
