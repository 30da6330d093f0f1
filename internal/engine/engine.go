// Package engine defines the pluggable summarization-engine capability and
// its implementations.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
)

// Engine turns transcript text into a ChunkResult. The orchestrator treats
// it as an opaque capability; any generative backend may sit behind it.
type Engine interface {
	// ProcessChunk analyzes one chunk of text: classification, task and
	// reminder extraction, title candidates, and a summary.
	ProcessChunk(ctx context.Context, text string) (digest.ChunkResult, error)

	// MetaSummarize rewrites concatenated chunk summaries into one
	// coherent document.
	MetaSummarize(ctx context.Context, combined string) (string, error)

	// Identity names the engine for cache fingerprinting. Must be stable
	// across invocations of the same engine configuration.
	Identity() string

	// TokenBudget is the maximum estimated tokens one ProcessChunk call
	// accepts.
	TokenBudget() int
}

// ErrTransient marks failures worth retrying: network errors, timeouts,
// rate limits, 5xx-equivalents, and unparseable engine responses.
var ErrTransient = errors.New("transient engine failure")

// Transientf wraps a formatted error as transient.
func Transientf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrTransient}, args...)...)
}

// MarkTransient wraps err as transient, preserving the original for
// errors.Is/As.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// IsTransient classifies retryable engine failures. Context cancellation
// is never transient; a deadline on a single attempt is.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ErrTransient) || errors.Is(err, context.DeadlineExceeded)
}
