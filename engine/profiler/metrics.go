package profiler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/indicator"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

// Selection outcomes recorded by RecordSelection.
const (
	SelectionStarted = "started"
	SelectionIgnored = "ignored"
	SelectionFailed  = "failed"
)

// Metrics exports viewer statistics to Prometheus. It implements travel.Observer.
type Metrics struct {
	registry *prometheus.Registry

	framesPerSecond prometheus.Gauge
	cpuPercent      prometheus.Gauge
	heapBytes       prometheus.Gauge
	travelsTotal    *prometheus.CounterVec
	travelDuration  prometheus.Histogram
	selectionsTotal *prometheus.CounterVec
	indicators      *prometheus.GaugeVec
}

var _ travel.Observer = &Metrics{}

// NewMetrics creates the collectors and registers them on a dedicated registry.
//
// Returns:
//   - *Metrics: the collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		framesPerSecond: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "solaris_frames_per_second",
				Help: "Frames rendered per second over the last profiler interval",
			},
		),
		cpuPercent: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "solaris_process_cpu_percent",
				Help: "Process CPU usage over the last profiler interval",
			},
		),
		heapBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "solaris_heap_bytes",
				Help: "Bytes of allocated heap objects",
			},
		),
		travelsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solaris_travels_total",
				Help: "Camera travels by lifecycle event",
			},
			[]string{"event"},
		),
		travelDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "solaris_travel_duration_seconds",
				Help:    "Wall time from travel start to completion",
				Buckets: []float64{1, 2, 3, 4, 5, 8, 13},
			},
		),
		selectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solaris_selections_total",
				Help: "Body selections by outcome",
			},
			[]string{"outcome"},
		),
		indicators: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "solaris_indicators",
				Help: "Indicators per state in the last projected frame",
			},
			[]string{"state"},
		),
	}

	m.registry.MustRegister(m.framesPerSecond)
	m.registry.MustRegister(m.cpuPercent)
	m.registry.MustRegister(m.heapBytes)
	m.registry.MustRegister(m.travelsTotal)
	m.registry.MustRegister(m.travelDuration)
	m.registry.MustRegister(m.selectionsTotal)
	m.registry.MustRegister(m.indicators)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFrameStats stores the profiler's periodic frame statistics.
func (m *Metrics) RecordFrameStats(fps, cpuPercent float64, heapBytes uint64) {
	m.framesPerSecond.Set(fps)
	m.cpuPercent.Set(cpuPercent)
	m.heapBytes.Set(float64(heapBytes))
}

// RecordSelection counts a selection attempt by outcome.
func (m *Metrics) RecordSelection(outcome string) {
	m.selectionsTotal.WithLabelValues(outcome).Inc()
}

// RecordProjection stores the outcome counts of the last indicator projection.
func (m *Metrics) RecordProjection(stats indicator.Stats) {
	m.indicators.WithLabelValues("visible").Set(float64(stats.Visible))
	m.indicators.WithLabelValues("hidden").Set(float64(stats.Hidden))
	m.indicators.WithLabelValues("skipped").Set(float64(stats.Skipped))
}

func (m *Metrics) TravelStarted(_ *body.TrackedBody, _ travel.Status) {
	m.travelsTotal.WithLabelValues("started").Inc()
}

func (m *Metrics) TravelCompleted(_ *body.TrackedBody, elapsed time.Duration) {
	m.travelsTotal.WithLabelValues("completed").Inc()
	m.travelDuration.Observe(elapsed.Seconds())
}

// Handler returns the /metrics HTTP handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ServeMetrics serves /metrics on addr until ctx is cancelled or the listener fails.
//
// Parameters:
//   - ctx: stops the server when done
//   - addr: listen address, e.g. ":9100"
//   - logger: receives server lifecycle events
//
// Returns:
//   - error: the listen failure, nil after a clean shutdown
func (m *Metrics) ServeMetrics(ctx context.Context, addr string, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
	return err
}
