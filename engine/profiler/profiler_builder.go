package profiler

import (
	"time"

	"github.com/rs/zerolog"
)

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are reported.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithLogger sets the logger stats are reported to at debug level.
func WithLogger(l zerolog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = l
	}
}

// WithMetrics mirrors every report into Prometheus gauges.
func WithMetrics(m *Metrics) ProfilerOption {
	return func(p *Profiler) {
		p.metrics = m
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithCPUSampler replaces the process CPU sampler. A nil sampler disables CPU reporting.
func WithCPUSampler(sample func() (float64, error)) ProfilerOption {
	return func(p *Profiler) {
		p.cpu = sample
	}
}
