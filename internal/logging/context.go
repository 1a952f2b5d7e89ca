package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for reconstruction run identifiers.
	FieldRunID = "run_id"
	// FieldSpeaker is the standardized structured logging key for speaker ids.
	FieldSpeaker = "speaker"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	runIDKey contextKey = iota
	speakerKey
)

// WithRunID tags ctx with a reconstruction run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithSpeaker tags ctx with the speaker being reconstructed.
func WithSpeaker(ctx context.Context, speaker int) context.Context {
	return context.WithValue(ctx, speakerKey, speaker)
}

// SpeakerFromContext returns the speaker stored by WithSpeaker.
func SpeakerFromContext(ctx context.Context) (int, bool) {
	if ctx == nil {
		return 0, false
	}
	speaker, ok := ctx.Value(speakerKey).(int)
	return speaker, ok
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if speaker, ok := SpeakerFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldSpeaker, speaker))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
