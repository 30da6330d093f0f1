package digest

import (
	"errors"
	"fmt"
	"strings"
)

// Validation limits. Short texts (at most ShortTextWords words) are always
// valid and processed as-is, which subsumes any lower word bound.
const (
	MaxWords       = 50000
	ShortTextWords = 50
)

var (
	// ErrEmptyTranscript is returned before any processing starts.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrTranscriptTooLong is returned when the word count exceeds MaxWords.
	ErrTranscriptTooLong = errors.New("transcript exceeds maximum word count")

	// ErrMalformedChunks indicates a contract violation in chunk boundaries
	// and aborts the run.
	ErrMalformedChunks = errors.New("malformed chunk boundaries")
)

// Validate rejects input the pipeline must not touch. It returns nil for
// any non-empty text within the word limit.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyTranscript
	}
	if n := len(strings.Fields(text)); n > MaxWords {
		return fmt.Errorf("%w: %d words", ErrTranscriptTooLong, n)
	}
	return nil
}

// ValidateChunks checks that chunk sequence numbers form a contiguous
// [0,n) range with non-overlapping, ordered spans.
func ValidateChunks(chunks []TranscriptChunk) error {
	for i, c := range chunks {
		if c.Seq != i {
			return fmt.Errorf("%w: seq %d at index %d", ErrMalformedChunks, c.Seq, i)
		}
		if c.End < c.Start {
			return fmt.Errorf("%w: inverted span at seq %d", ErrMalformedChunks, i)
		}
		if i > 0 && c.Start < chunks[i-1].End {
			return fmt.Errorf("%w: overlapping span at seq %d", ErrMalformedChunks, i)
		}
	}
	return nil
}
