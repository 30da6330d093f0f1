// Package orchestrator drives transcript analysis: validation, chunking,
// engine calls with bounded retry, merging, and caching.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/GriffinCanCode/transcript-digest/internal/cache"
	"github.com/GriffinCanCode/transcript-digest/internal/chunker"
	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/engine"
	"github.com/GriffinCanCode/transcript-digest/internal/extract"
	"github.com/GriffinCanCode/transcript-digest/internal/resilience"
	"github.com/GriffinCanCode/transcript-digest/internal/resource"
	"github.com/GriffinCanCode/transcript-digest/internal/trace"
)

// ChunkState tracks one chunk through its processing lifecycle.
type ChunkState string

const (
	StatePending    ChunkState = "pending"
	StateAttempting ChunkState = "attempting"
	StateRetrying   ChunkState = "retrying"
	StateSucceeded  ChunkState = "succeeded"
	StateFailed     ChunkState = "failed"
)

// Event reports per-chunk progress to an optional observer.
type Event struct {
	Seq   int
	Total int
	State ChunkState
	Err   error
}

// Config tunes the orchestrator. Zero values take defaults.
type Config struct {
	MaxRetries               int
	RetryBaseDelay           time.Duration
	MergeSimilarityThreshold float64
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = resilience.EngineMaxRetries
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = resilience.EngineBaseDelay
	}
	if c.MergeSimilarityThreshold <= 0 {
		c.MergeSimilarityThreshold = DefaultMergeSimilarityThreshold
	}
	return c
}

// Orchestrator coordinates the digest pipeline for one engine and cache.
type Orchestrator struct {
	engine    engine.Engine
	cache     cache.Cache
	provider  resource.Provider
	extractor *extract.Extractor
	cfg       Config
	flight    singleflight.Group
}

// New creates an orchestrator. A nil cache disables caching; a nil
// provider falls back to the fixed balanced policy, and a nil extractor
// to defaults.
func New(eng engine.Engine, c cache.Cache, provider resource.Provider, extractor *extract.Extractor, cfg Config) *Orchestrator {
	if provider == nil {
		provider = resource.Fixed()
	}
	if extractor == nil {
		extractor = extract.New(extract.Config{}, nil)
	}
	return &Orchestrator{
		engine:    eng,
		cache:     c,
		provider:  provider,
		extractor: extractor,
		cfg:       cfg.withDefaults(),
	}
}

// Process produces a digest for text. See ProcessWithProgress.
func (o *Orchestrator) Process(ctx context.Context, text string) (digest.Digest, error) {
	return o.ProcessWithProgress(ctx, text, nil)
}

// ProcessWithProgress produces a digest for text, reporting per-chunk
// progress to onEvent when non-nil. Validation errors surface before any
// processing; transient engine failures degrade to skipped chunks.
// Identical concurrent requests share one engine invocation.
func (o *Orchestrator) ProcessWithProgress(ctx context.Context, text string, onEvent func(Event)) (digest.Digest, error) {
	if err := digest.Validate(text); err != nil {
		return digest.Digest{}, err
	}

	ctx, span := trace.StartSpan(ctx, "digest_run")
	defer span.End()
	start := time.Now()

	key := cache.Fingerprint(text, o.engine.Identity())
	if o.cache != nil {
		if d, ok := o.cache.Get(ctx, key); ok {
			cacheHits.Inc()
			d.Diagnostics.CacheHit = true
			span.SetAttr("cache", "hit")
			return d, nil
		}
		cacheMisses.Inc()
	}

	v, err, _ := o.flight.Do(key, func() (any, error) {
		d, err := o.run(ctx, text, onEvent)
		if err != nil {
			return digest.Digest{}, err
		}
		if o.cache != nil {
			o.cache.Set(ctx, key, d, len(text))
		}
		return d, nil
	})
	if err != nil {
		return digest.Digest{}, err
	}

	digestDuration.Observe(time.Since(start).Seconds())
	return v.(digest.Digest), nil
}

// run picks the direct or chunked path by estimated token count.
func (o *Orchestrator) run(ctx context.Context, text string, onEvent func(Event)) (digest.Digest, error) {
	words := len(strings.Fields(text))
	tokens := chunker.EstimateTokens(text)

	// Short texts are used as-is and never routed through the chunker.
	if words <= digest.ShortTextWords || tokens <= o.engine.TokenBudget() {
		return o.runDirect(ctx, text)
	}
	return o.runChunked(ctx, text, onEvent)
}

// runDirect delegates the whole text to a single engine call.
func (o *Orchestrator) runDirect(ctx context.Context, text string) (digest.Digest, error) {
	log := trace.Logger(ctx)

	var result digest.ChunkResult
	err := resilience.Retry(ctx, o.retryConfig(), func() error {
		var callErr error
		result, callErr = o.engine.ProcessChunk(ctx, text)
		return callErr
	})
	if err != nil {
		log.Error("direct engine call failed", "error", err)
		return digest.Digest{}, fmt.Errorf("engine: %w", err)
	}
	chunksProcessed.Inc()

	return digest.Digest{
		Summary:     result.Summary,
		Tasks:       result.Tasks,
		Reminders:   result.Reminders,
		Titles:      result.Titles,
		ContentType: result.ContentType,
		Diagnostics: digest.Diagnostics{
			Chunks:     1,
			Confidence: result.Confidence,
		},
	}, nil
}

// runChunked splits text, drives each chunk through the engine with
// bounded retry, and merges the partial results. A chunk that exhausts
// its retries is skipped, not fatal.
func (o *Orchestrator) runChunked(ctx context.Context, text string, onEvent func(Event)) (digest.Digest, error) {
	policy := o.provider.Policy()
	maxTokens := min(o.engine.TokenBudget(), chunker.TokensForBytes(policy.ChunkSizeBytes))

	chunks := chunker.Split(text, maxTokens)
	if err := digest.ValidateChunks(chunks); err != nil {
		// Contract violation: abort rather than merge a partial digest.
		return digest.Digest{}, err
	}

	log := trace.Logger(ctx)
	log.Info("processing chunked transcript", "chunks", len(chunks), "max_tokens", maxTokens)

	emit := func(e Event) {
		if onEvent != nil {
			e.Total = len(chunks)
			onEvent(e)
		}
	}
	for _, c := range chunks {
		emit(Event{Seq: c.Seq, State: StatePending})
	}

	var results []digest.ChunkResult
	skipped := 0

	for _, c := range chunks {
		// Policy is re-read each iteration so pressure changes take
		// effect mid-run.
		if delay := o.provider.Policy().InterChunkDelay; delay > 0 && c.Seq > 0 {
			select {
			case <-ctx.Done():
				return digest.Digest{}, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := o.processChunk(ctx, c, emit)
		if err != nil {
			if ctx.Err() != nil {
				// Cancelled mid-attempt: no partial result is merged.
				return digest.Digest{}, ctx.Err()
			}
			skipped++
			chunksSkipped.Inc()
			log.Warn("chunk skipped after retries", "seq", c.Seq, "error", err)
			emit(Event{Seq: c.Seq, State: StateFailed, Err: err})
			continue
		}
		chunksProcessed.Inc()
		results = append(results, result)
		emit(Event{Seq: c.Seq, State: StateSucceeded})
	}

	if len(results) == 0 {
		return digest.Digest{}, fmt.Errorf("engine: all %d chunks failed", len(chunks))
	}
	return o.merge(ctx, results, skipped)
}

// processChunk runs one chunk through the engine with bounded retry and
// exponential backoff.
func (o *Orchestrator) processChunk(ctx context.Context, c digest.TranscriptChunk, emit func(Event)) (digest.ChunkResult, error) {
	var result digest.ChunkResult
	attempt := 0

	err := resilience.Retry(ctx, o.retryConfig(), func() error {
		if attempt == 0 {
			emit(Event{Seq: c.Seq, State: StateAttempting})
		} else {
			emit(Event{Seq: c.Seq, State: StateRetrying})
		}
		attempt++

		var callErr error
		result, callErr = o.engine.ProcessChunk(ctx, c.Text)
		return callErr
	})
	if err != nil {
		return digest.ChunkResult{}, err
	}

	result.Seq = c.Seq
	return result, nil
}

func (o *Orchestrator) retryConfig() resilience.RetryConfig {
	cfg := resilience.EngineRetryConfig(engine.IsTransient)
	cfg.MaxRetries = o.cfg.MaxRetries
	cfg.BaseDelay = o.cfg.RetryBaseDelay
	return cfg
}
