package tracing

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func testSpan(name string) sdktrace.ReadOnlySpan {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{2},
	})
	return tracetest.SpanStub{
		Name: name,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{1},
			SpanID:  trace.SpanID{3},
		}),
		Parent:    parent,
		SpanKind:  trace.SpanKindClient,
		StartTime: start,
		EndTime:   start.Add(1500 * time.Microsecond),
		Status:    sdktrace.Status{Code: codes.Error, Description: "status 500"},
		Attributes: []attribute.KeyValue{
			attribute.Int(AttrHTTPStatusCode, 500),
			attribute.String(AttrRequestID, "req-1"),
		},
		Events: []sdktrace.Event{{
			Name:       EventStatusReceived,
			Time:       start.Add(time.Millisecond),
			Attributes: []attribute.KeyValue{attribute.String("status", "boom")},
		}},
	}.Snapshot()
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_AppendsJSONLines(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"existing":true}`+"\n"), 0o600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, exporter.ExportSpans(ctx, []sdktrace.ReadOnlySpan{testSpan("api.persist_overrides")}))
	require.NoError(t, exporter.ExportSpans(ctx, nil))
	require.NoError(t, exporter.Shutdown(ctx))

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var record SpanRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	require.Equal(t, "api.persist_overrides", record.Name)
	require.Equal(t, "CLIENT", record.Kind)
	require.Equal(t, "ERROR", record.Status)
	require.Equal(t, "status 500", record.StatusMsg)
	require.Equal(t, trace.SpanID{2}.String(), record.ParentSpanID)
	require.InDelta(t, 1.5, record.DurationMs, 0.0001)
	require.Equal(t, float64(500), record.Attributes[AttrHTTPStatusCode])
	require.Equal(t, "req-1", record.Attributes[AttrRequestID])
	require.Len(t, record.Events, 1)
	require.Equal(t, EventStatusReceived, record.Events[0].Name)
	require.Equal(t, "boom", record.Events[0].Attributes["status"])
}

func TestFileExporter_ExportAfterShutdown(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, exporter.Shutdown(ctx))
	require.NoError(t, exporter.Shutdown(ctx), "second shutdown is a no-op")
	require.Error(t, exporter.ExportSpans(ctx, []sdktrace.ReadOnlySpan{testSpan("late")}))
}

func TestSpanKindToString(t *testing.T) {
	tests := []struct {
		kind trace.SpanKind
		want string
	}{
		{trace.SpanKindInternal, "INTERNAL"},
		{trace.SpanKindServer, "SERVER"},
		{trace.SpanKindClient, "CLIENT"},
		{trace.SpanKindProducer, "PRODUCER"},
		{trace.SpanKindConsumer, "CONSUMER"},
		{trace.SpanKindUnspecified, "UNSPECIFIED"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, spanKindToString(tt.kind))
		})
	}
}

func TestEndSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	EndSpan(span, errors.New("connection refused"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, codes.Error, ended[0].Status().Code)
	require.Equal(t, "connection refused", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1, "RecordError adds an exception event")
}
