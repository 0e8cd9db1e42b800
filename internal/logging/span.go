package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Span represents a logical unit of work tied to a request trace.
type Span struct {
	name   string
	logger *slog.Logger
	start  time.Time
}

// StartSpan derives a child span from ctx. The returned context carries a
// logger annotated with trace and span identifiers, so anything logged
// through FromContext inside the span is correlated.
func StartSpan(ctx context.Context, name string, attrs ...slog.Attr) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := FromContext(ctx)

	traceID := TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
		ctx = WithTraceID(ctx, traceID)
		logger = logger.With(slog.String("trace_id", traceID))
	}

	parentSpanID := SpanIDFromContext(ctx)
	spanID := uuid.NewString()

	args := []any{
		slog.String("span_id", spanID),
		slog.String("span_name", name),
	}
	if parentSpanID != "" {
		args = append(args, slog.String("parent_span_id", parentSpanID))
	}
	for _, a := range attrs {
		args = append(args, a)
	}
	logger = logger.With(args...)

	ctx = WithLogger(ctx, logger)
	ctx = WithSpanID(ctx, spanID)

	return ctx, &Span{name: name, logger: logger, start: time.Now()}
}

// End emits a completion entry at debug level with the span duration.
func (s *Span) End() {
	if s == nil {
		return
	}
	s.logger.Debug("span completed", slog.Duration("duration", time.Since(s.start)))
}

// Fail records err against the span at error level.
func (s *Span) Fail(err error) {
	if s == nil || err == nil {
		return
	}
	s.logger.Error("span failed", slog.String("error", err.Error()), slog.Duration("duration", time.Since(s.start)))
}
