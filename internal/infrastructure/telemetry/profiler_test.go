package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	profiler, err := NewProfiler(ProfilerConfig{
		Enabled:         false,
		ServerAddress:   "http://localhost:4040",
		ApplicationName: "cropledger",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, profiler)

	assert.False(t, profiler.IsEnabled())
	assert.NoError(t, profiler.Stop())
}

func TestNewProfiler_RequiresServerAndName(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "cropledger"}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server address is required")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application name is required")
}

func TestProfiler_StopIsIdempotent(t *testing.T) {
	profiler, err := NewProfiler(ProfilerConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, profiler.Stop())
		}()
	}
	wg.Wait()
}

func TestProfiler_ContentionProfilesAreOptIn(t *testing.T) {
	p := &Profiler{}
	assert.Len(t, p.profileTypes(), 6)

	p.config = ProfilerConfig{ProfileMutex: true, ProfileBlock: true}
	assert.Len(t, p.profileTypes(), 10)
}

func TestWithProfilingLabels(t *testing.T) {
	t.Run("labels reach the callback context", func(t *testing.T) {
		var op string
		WithProfilingLabels(context.Background(), OperationLabels("report.records"), func(ctx context.Context) {
			op, _ = pprof.Label(ctx, ProfilingLabelOperation)
		})
		assert.Equal(t, "report.records", op)
	})

	t.Run("no labels still runs", func(t *testing.T) {
		called := false
		WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
		assert.True(t, called)
	})

	t.Run("high cardinality labels are dropped", func(t *testing.T) {
		var found bool
		WithProfilingLabels(context.Background(), map[string]string{
			"record_id":  "0b8f3c3e",
			"controller": "ledger",
		}, func(ctx context.Context) {
			_, found = pprof.Label(ctx, "record_id")
		})
		assert.False(t, found)
	})
}

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Route-Name": strings.Repeat("x", MaxLabelValueLength+10),
		"method":     "GET",
		"empty":      "",
		"trace_id":   "abc",
		"!!!":        "dropped",
	})

	require.Equal(t, []string{"route_name", strings.Repeat("x", MaxLabelValueLength), "method", "GET"}, pairs)
	assert.Nil(t, sanitizeLabels(nil))
}

func TestHTTPRequestLabels_SkipsEmpty(t *testing.T) {
	assert.Equal(t, map[string]string{
		ProfilingLabelRoute:  "/api/v1/ledger",
		ProfilingLabelMethod: "GET",
	}, HTTPRequestLabels("", "/api/v1/ledger", "GET"))
}
