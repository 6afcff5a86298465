package profiler

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is one profiler report.
type Stats struct {
	FPS         float64
	CPUPercent  float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Reports stats to the logger, and to Metrics when attached, at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	now     func() time.Time
	cpu     func() (float64, error)
	logger  zerolog.Logger
	metrics *Metrics
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second. Process CPU usage is sampled through gopsutil unless
// WithCPUSampler replaces it.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		now:            time.Now,
		logger:         zerolog.Nop(),
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		// Percent(0) reports usage since the previous call, which lines up with the report interval.
		p.cpu = func() (float64, error) { return proc.Percent(0) }
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Last returns the most recent report.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Reports performance statistics when the update interval has elapsed.
// Statistics include: FPS, process CPU, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were reported this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap; TotalAlloc: cumulative (tracks churn); Sys: process footprint
	s := Stats{
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:  float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:   float64(p.memStats.Sys) / 1024 / 1024,
		GCCount: p.memStats.NumGC,
	}
	if p.cpu != nil {
		if pct, err := p.cpu(); err == nil {
			s.CPUPercent = pct
		} else {
			p.logger.Debug().Err(err).Msg("cpu sample")
		}
	}
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Debug().
		Float64("fps", s.FPS).
		Float64("cpuPercent", s.CPUPercent).
		Float64("heapMB", s.HeapMB).
		Float64("allocRateMBs", s.AllocRateMB).
		Uint32("gc", s.GCCount).
		Uint64("lastPauseUs", s.LastPauseUs).
		Uint64("maxPauseUs", s.MaxPauseUs).
		Float64("sysMB", s.SysMB).
		Msg("frame stats")
	if p.metrics != nil {
		p.metrics.RecordFrameStats(s.FPS, s.CPUPercent, p.memStats.Alloc)
	}

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
