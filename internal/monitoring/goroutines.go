// Package monitoring samples process health for the game server logs.
package monitoring

import (
	"context"
	"maps"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Gauge reports the current size of a component, such as open rooms.
type Gauge func() int

// GoroutineMonitor tracks goroutine growth next to registered component
// gauges. Each room costs one goroutine plus two per socket, so goroutines
// that outgrow the rooms point at leaked pumps.
type GoroutineMonitor struct {
	mu             sync.RWMutex
	logger         zerolog.Logger
	baseline       int
	current        int
	peak           int
	checkInterval  time.Duration
	alertThreshold int
	alertCooldown  time.Duration
	lastAlert      time.Time
	gauges         map[string]Gauge
	counts         map[string]int
	numGoroutine   func() int
	now            func() time.Time
}

// NewGoroutineMonitor creates a new goroutine monitor
func NewGoroutineMonitor(logger zerolog.Logger, checkInterval time.Duration, alertThreshold int) *GoroutineMonitor {
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		logger:         logger.With().Str("component", "GoroutineMonitor").Logger(),
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
		checkInterval:  checkInterval,
		alertThreshold: alertThreshold,
		alertCooldown:  5 * time.Minute,
		gauges:         make(map[string]Gauge),
		counts:         make(map[string]int),
		numGoroutine:   runtime.NumGoroutine,
		now:            time.Now,
	}
}

// Register adds a named gauge sampled on every check.
func (gm *GoroutineMonitor) Register(name string, gauge Gauge) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.gauges[name] = gauge
}

// Run samples every check interval until ctx is done.
func (gm *GoroutineMonitor) Run(ctx context.Context) {
	if gm.checkInterval <= 0 {
		return
	}

	gm.logger.Info().
		Int("baseline", gm.baseline).
		Msg("Started goroutine monitoring")

	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.Check()
		case <-ctx.Done():
			return
		}
	}
}

// Check samples goroutines and gauges once, logging an alert when the
// goroutine count crosses the threshold.
func (gm *GoroutineMonitor) Check() GoroutineMetrics {
	current := gm.numGoroutine()

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}
	for name, gauge := range gm.gauges {
		gm.counts[name] = gauge()
	}

	now := gm.now()
	shouldAlert := gm.alertThreshold > 0 &&
		current > gm.alertThreshold &&
		now.Sub(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = now
	}
	metrics := gm.metricsLocked()
	gm.mu.Unlock()

	event := gm.logger.Debug()
	if shouldAlert {
		event = gm.logger.Warn().Int("threshold", gm.alertThreshold)
	}
	event = event.
		Int("current", metrics.Current).
		Int("baseline", metrics.Baseline).
		Int("peak", metrics.Peak)
	for name, count := range metrics.ComponentCounts {
		event = event.Int(name, count)
	}
	if shouldAlert {
		event.Msg("High goroutine count detected - possible leak")
	} else {
		event.Msg("Goroutine metrics")
	}
	return metrics
}

// GetMetrics returns the last sampled metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return gm.metricsLocked()
}

func (gm *GoroutineMonitor) metricsLocked() GoroutineMetrics {
	return GoroutineMetrics{
		Current:         gm.current,
		Baseline:        gm.baseline,
		Peak:            gm.peak,
		Growth:          gm.current - gm.baseline,
		ComponentCounts: maps.Clone(gm.counts),
	}
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current         int            `json:"current"`
	Baseline        int            `json:"baseline"`
	Peak            int            `json:"peak"`
	Growth          int            `json:"growth"`
	ComponentCounts map[string]int `json:"component_counts"`
}
