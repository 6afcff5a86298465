package profiler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/indicator"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

func TestProfiler_ReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var buf bytes.Buffer
	m := NewMetrics()
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithInterval(time.Second),
		WithLogger(zerolog.New(&buf)),
		WithMetrics(m),
		WithCPUSampler(func() (float64, error) { return 12.5, nil }),
	)

	for range 59 {
		now = now.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	now = now.Add(410 * time.Millisecond)
	require.True(t, p.Tick())

	assert.InDelta(t, 60, p.Last().FPS, 1e-6)
	assert.Greater(t, p.Last().HeapMB, 0.0)
	assert.Contains(t, buf.String(), `"message":"frame stats"`)
	assert.InDelta(t, 60, testutil.ToFloat64(m.framesPerSecond), 1e-6)
	assert.Equal(t, 12.5, p.Last().CPUPercent)
	assert.Equal(t, 12.5, testutil.ToFloat64(m.cpuPercent))

	// the frame counter restarts after a report
	now = now.Add(100 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestProfiler_CPUSamplerErrorKeepsReporting(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithCPUSampler(func() (float64, error) { return 0, errors.New("unsupported") }),
	)

	now = now.Add(2 * time.Second)
	require.True(t, p.Tick())
	assert.Zero(t, p.Last().CPUPercent)
	assert.InDelta(t, 0.5, p.Last().FPS, 1e-6)
}

func TestMetrics_TravelAndSelections(t *testing.T) {
	m := NewMetrics()
	b := &body.TrackedBody{ID: 3, Name: "Earth"}

	m.TravelStarted(b, travel.Status{Destination: "Earth"})
	m.TravelCompleted(b, 3*time.Second)
	m.RecordSelection(SelectionStarted)
	m.RecordSelection(SelectionIgnored)
	m.RecordSelection(SelectionIgnored)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.travelsTotal.WithLabelValues("started")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.travelsTotal.WithLabelValues("completed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.selectionsTotal.WithLabelValues(SelectionIgnored)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.travelDuration))
}

func TestMetrics_ProjectionGauges(t *testing.T) {
	m := NewMetrics()
	m.RecordProjection(indicator.Stats{Visible: 4, Hidden: 2, Skipped: 1})

	assert.Equal(t, 4.0, testutil.ToFloat64(m.indicators.WithLabelValues("visible")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.indicators.WithLabelValues("hidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.indicators.WithLabelValues("skipped")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordSelection(SelectionFailed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `solaris_selections_total{outcome="failed"} 1`), body)
}

func TestMetrics_ServeMetrics(t *testing.T) {
	m := NewMetrics()

	err := m.ServeMetrics(context.Background(), "missing-port", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-port")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan error, 1)
	go func() { done <- m.ServeMetrics(ctx, "127.0.0.1:0", zerolog.Nop()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ServeMetrics did not stop after cancellation")
	}
}
