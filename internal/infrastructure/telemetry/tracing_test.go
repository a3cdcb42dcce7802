package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/crm/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs an in-memory recorder as the global provider for the test
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attributes(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestStartSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "partner.create",
		telemetry.WithAttribute("actor", "u-42"),
		telemetry.WithSpanKind(trace.SpanKindServer),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "partner.create", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Equal(t, telemetry.TracerName, spans[0].InstrumentationScope().Name)
	assert.Equal(t, "u-42", attributes(spans[0])["actor"].AsString())
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "partner", "search")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "partner.search", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
}

func TestSetAttributes(t *testing.T) {
	sr := setupTestTracer(t)
	id := uuid.New()

	_, span := telemetry.StartSpan(context.Background(), "op")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPartnerID, id,
		telemetry.SpanAttrResultCount, int64(7),
		42, "non-string key is skipped",
		"dangling",
	)
	telemetry.SetAttribute(span, telemetry.SpanAttrSection, "analysis")
	span.End()

	attrs := attributes(sr.Ended()[0])
	assert.Equal(t, id.String(), attrs[telemetry.SpanAttrPartnerID].AsString())
	assert.Equal(t, int64(7), attrs[telemetry.SpanAttrResultCount].AsInt64())
	assert.Equal(t, "analysis", attrs[telemetry.SpanAttrSection].AsString())
	assert.NotContains(t, attrs, attribute.Key("dangling"))
	assert.Len(t, attrs, 3)
}

func TestRecordError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "op")
	telemetry.RecordError(span, nil)
	telemetry.RecordError(span, errors.New("store unavailable"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "store unavailable", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestAddEvent(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "op")
	telemetry.AddEvent(span, "average_derived", "count", 4)
	span.End()

	events := sr.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "average_derived", events[0].Name)
	assert.Equal(t, int64(4), events[0].Attributes[0].Value.AsInt64())
}

func TestGetTraceID(t *testing.T) {
	setupTestTracer(t)

	assert.Empty(t, telemetry.GetTraceID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "op")
	defer span.End()
	assert.Len(t, telemetry.GetTraceID(ctx), 32)
}

func TestHelpers_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.SetAttributes(nil, "k", "v")
		telemetry.SetAttribute(nil, "k", "v")
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.AddEvent(nil, "e")
	})
}
