package telemetry

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTELHook adds trace and span IDs to every log entry
type OTELHook struct{}

func (h OTELHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return
	}

	e.Str("trace_id", span.SpanContext().TraceID().String())
	e.Str("span_id", span.SpanContext().SpanID().String())

	if level == zerolog.ErrorLevel {
		span.SetStatus(codes.Error, msg)
	}
}

// Logger wraps zerolog with OTEL integration
type Logger struct {
	zerolog.Logger
}

// NewLogger creates a new logger with OTEL hooks
func NewLogger(service string) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", service).
		Logger().
		Hook(OTELHook{})

	return &Logger{Logger: logger}
}

// WithContext returns a logger with context (for trace propagation)
func (l *Logger) WithContext(ctx context.Context) *zerolog.Logger {
	logger := l.Logger.With().Ctx(ctx).Logger()
	return &logger
}

// Convenience methods for subscription passes

func (l *Logger) LogPassStart(ctx context.Context, service, stage string, resourceCount int) {
	l.WithContext(ctx).Info().
		Str("stage", stage).
		Str("deployed_service", service).
		Int("resources", resourceCount).
		Str("operation", "plan").
		Msg("starting subscription pass")
}

func (l *Logger) LogPassComplete(ctx context.Context, planned, skipped, warnings int) {
	l.WithContext(ctx).Info().
		Int("subscriptions_planned", planned).
		Int("candidates_skipped", skipped).
		Int("warnings", warnings).
		Str("operation", "plan").
		Msg("subscription pass completed")
}

func (l *Logger) LogRemoteError(ctx context.Context, operation string, err error) {
	l.WithContext(ctx).Warn().
		Err(err).
		Str("operation", operation).
		Msg("remote query failed")
}
