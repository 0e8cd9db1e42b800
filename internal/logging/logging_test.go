package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Fatal("expected default logger")
	}

	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	if FromContext(WithLogger(context.Background(), logger)) != logger {
		t.Fatal("expected stored logger")
	}
}

func TestStartSpanCorrelatesLogs(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, "debug"))

	ctx, parent := StartSpan(ctx, "embeds.create_document", slog.String("platform", "vimeo"))
	parentID := SpanIDFromContext(ctx)
	traceID := TraceIDFromContext(ctx)
	if parentID == "" || traceID == "" {
		t.Fatal("expected span and trace ids on context")
	}

	childCtx, child := StartSpan(ctx, "embeds.feed")
	if TraceIDFromContext(childCtx) != traceID {
		t.Fatal("expected child span to share the trace id")
	}
	child.Fail(errors.New("feed unavailable"))
	child.End()
	parent.End()

	entries := decodeLines(t, &buf)
	if len(entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(entries))
	}
	if entries[0]["level"] != "ERROR" || entries[0]["parent_span_id"] != parentID || entries[0]["error"] != "feed unavailable" {
		t.Fatalf("unexpected failure entry %v", entries[0])
	}
	if entries[2]["span_name"] != "embeds.create_document" || entries[2]["platform"] != "vimeo" || entries[2]["trace_id"] != traceID {
		t.Fatalf("unexpected parent completion entry %v", entries[2])
	}
}

func TestNilSpanIsSafe(t *testing.T) {
	var span *Span
	span.End()
	span.Fail(errors.New("ignored"))
}
