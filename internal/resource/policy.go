// Package resource tunes pipeline knobs from device pressure signals. The
// adapter is advisory only: it adjusts chunk size, cache capacity, and
// inter-chunk delay, and never blocks or fails a run.
package resource

import "time"

// OptimizationLevel is the discrete pressure mode.
type OptimizationLevel int

const (
	Balanced OptimizationLevel = iota
	BatteryOptimized
	MemoryOptimized
)

func (l OptimizationLevel) String() string {
	return [...]string{"balanced", "battery_optimized", "memory_optimized"}[l]
}

// Policy holds the three tunable knobs consulted at the start of each
// chunk iteration.
type Policy struct {
	ChunkSizeBytes  int
	CacheCountLimit int
	InterChunkDelay time.Duration
}

// Provider supplies the current policy. Implementations must be safe for
// concurrent use and must never block the pipeline hot path.
type Provider interface {
	Policy() Policy
}

// PolicyFor maps a level to its knob settings.
func PolicyFor(level OptimizationLevel) Policy {
	switch level {
	case BatteryOptimized:
		return Policy{
			ChunkSizeBytes:  8 << 10,
			CacheCountLimit: 25,
			InterChunkDelay: 500 * time.Millisecond,
		}
	case MemoryOptimized:
		return Policy{
			ChunkSizeBytes:  4 << 10,
			CacheCountLimit: 10,
			InterChunkDelay: 200 * time.Millisecond,
		}
	default:
		return Policy{
			ChunkSizeBytes:  16 << 10,
			CacheCountLimit: 50,
			InterChunkDelay: 0,
		}
	}
}

// FixedProvider returns a constant policy; the standard choice for
// headless and server deployments.
type FixedProvider struct {
	P Policy
}

// Fixed returns a provider pinned to the balanced policy.
func Fixed() FixedProvider {
	return FixedProvider{P: PolicyFor(Balanced)}
}

// Policy implements Provider.
func (f FixedProvider) Policy() Policy {
	return f.P
}
