package resource

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
)

// Adaptive provider thresholds.
const (
	DefaultPollInterval = 30 * time.Second
	memoryPressurePct   = 85.0
	lowBatteryPct       = 20.0
)

// BatteryProbe reports battery state. No portable battery API exists, so
// callers on battery-powered targets inject their own; the default always
// reports AC power.
type BatteryProbe interface {
	Level() (percent float64, onAC bool)
}

type acProbe struct{}

func (acProbe) Level() (float64, bool) { return 100, true }

// ACProbe returns a probe that always reports full AC power.
func ACProbe() BatteryProbe { return acProbe{} }

// memoryUsedPercent is swapped in tests.
var memoryUsedPercent = func() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// AdaptiveProvider polls memory and battery pressure off the hot path and
// derives the current optimization level.
type AdaptiveProvider struct {
	probe    BatteryProbe
	interval time.Duration

	mu      sync.RWMutex
	level   OptimizationLevel
	current Policy

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewAdaptive creates an adaptive provider. A nil probe defaults to AC
// power; a non-positive interval takes the default.
func NewAdaptive(probe BatteryProbe, interval time.Duration) *AdaptiveProvider {
	if probe == nil {
		probe = ACProbe()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &AdaptiveProvider{
		probe:    probe,
		interval: interval,
		level:    Balanced,
		current:  PolicyFor(Balanced),
		stopCh:   make(chan struct{}),
	}
}

// Policy implements Provider.
func (p *AdaptiveProvider) Policy() Policy {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Level returns the current optimization level.
func (p *AdaptiveProvider) Level() OptimizationLevel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// Start begins periodic polling until the context ends or Stop is called.
func (p *AdaptiveProvider) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.Refresh()
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopCh:
				return
			case <-ticker.C:
				p.Refresh()
			}
		}
	}()
}

// Stop halts polling; the last derived policy remains in effect.
func (p *AdaptiveProvider) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// Refresh samples pressure signals once and updates the policy. Sampling
// errors keep the previous policy; pressure detection must never fail a
// run.
func (p *AdaptiveProvider) Refresh() {
	level := Balanced

	if pct, err := memoryUsedPercent(); err == nil && pct > memoryPressurePct {
		level = MemoryOptimized
	} else if battery, onAC := p.probe.Level(); !onAC && battery < lowBatteryPct {
		level = BatteryOptimized
	}

	p.mu.Lock()
	changed := p.level != level
	p.level = level
	p.current = PolicyFor(level)
	p.mu.Unlock()

	if changed {
		slog.Info("resource policy changed", "level", level.String())
	}
}
