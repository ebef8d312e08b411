package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func contextWithSpan() (context.Context, trace.SpanContext) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc), sc
}

func fieldMap(entry observer.LoggedEntry) map[string]any {
	return entry.ContextMap()
}

func TestWithContext_FromContext(t *testing.T) {
	log := zap.NewExample()
	ctx := WithContext(context.Background(), log)

	assert.Same(t, log, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
	assert.NotNil(t, FromContext(ctx))
}

func TestRequestAndIdempotencyKeys(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetIdempotencyKey(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithIdempotencyKey(ctx, "fix-2024-03-01")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "fix-2024-03-01", GetIdempotencyKey(ctx))
}

func TestTraceIDs(t *testing.T) {
	t.Run("no span", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
		assert.Empty(t, GetSpanID(context.Background()))
	})

	t.Run("valid span", func(t *testing.T) {
		ctx, sc := contextWithSpan()
		assert.Equal(t, sc.TraceID().String(), GetTraceID(ctx))
		assert.Equal(t, sc.SpanID().String(), GetSpanID(ctx))
	})
}

// ============================================
// ContextLogger
// ============================================

func TestL_EnrichesEntries(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx, sc := contextWithSpan()
	ctx = WithContext(ctx, zap.New(core))
	ctx = WithRequestID(ctx, "req-9")
	ctx = WithIdempotencyKey(ctx, "key-9")

	L(ctx).Info("ledger built", zap.Int("entries", 3))

	entries := recorded.All()
	if assert.Len(t, entries, 1) {
		fields := fieldMap(entries[0])
		assert.Equal(t, sc.TraceID().String(), fields["trace_id"])
		assert.Equal(t, sc.SpanID().String(), fields["span_id"])
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, "key-9", fields["idempotency_key"])
		assert.EqualValues(t, 3, fields["entries"])
	}
}

func TestL_EmptyContextAddsNothing(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	L(ctx).Warn("plain")

	fields := fieldMap(recorded.All()[0])
	assert.Empty(t, fields)
}

func TestContextLogger_LevelsAndWith(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	cl := WithLogger(context.Background(), zap.New(core)).With(zap.String("component", "anomaly"))

	cl.Debug("d")
	cl.Info("i")
	cl.Warn("w")
	cl.Error("e")

	entries := recorded.All()
	assert.Len(t, entries, 4)
	for _, e := range entries {
		assert.Equal(t, "anomaly", fieldMap(e)["component"])
	}
	assert.NotNil(t, cl.Zap())
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := WithLogger(context.Background(), nil)
	assert.NotPanics(t, func() {
		cl.Info("nothing")
		cl.With(zap.String("k", "v")).Error("still nothing")
	})
}
