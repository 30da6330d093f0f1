// Package classify assigns a single content type to transcript text.
package classify

import (
	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/nlp"
	"github.com/GriffinCanCode/transcript-digest/internal/score"
)

// Threshold construction: longer and more complex transcripts need more
// corroborating evidence before committing to a category.
const (
	baseThreshold    = 0.3
	maxThreshold     = 0.6
	longWordCount    = 500
	mediumWordCount  = 200
	longSentences    = 20
	mediumSentences  = 10
	techDensityFloor = 0.1
	largeBonus       = 0.1
	smallBonus       = 0.05
)

// Result carries a classification and its confidence. When Passed is
// false, Type is general and Confidence is the best raw score, reported
// for diagnostics only.
type Result struct {
	Type       digest.ContentType
	Confidence float64
	Passed     bool
}

// Classify picks the best-scoring category, accepting it only if the score
// clears the adaptive threshold. Pure function of the input text.
func Classify(text string) Result {
	normalized := nlp.Normalize(text)

	best := digest.ContentGeneral
	bestScore := 0.0
	// Deterministic iteration: scan a fixed order so ties are stable.
	for _, ct := range []digest.ContentType{digest.ContentMeeting, digest.ContentJournal, digest.ContentTechnical} {
		scorer := score.ByType()[ct]
		if s := scorer(normalized, text); s > bestScore {
			best, bestScore = ct, s
		}
	}

	if bestScore > Threshold(text) {
		return Result{Type: best, Confidence: bestScore, Passed: true}
	}
	return Result{Type: digest.ContentGeneral, Confidence: bestScore, Passed: false}
}

// Threshold computes the adaptive confidence threshold for text, capped at
// maxThreshold. It never decreases when word count, sentence count, or
// technical density grow.
func Threshold(text string) float64 {
	normalized := nlp.Normalize(text)
	t := baseThreshold

	switch words := nlp.WordCount(normalized); {
	case words > longWordCount:
		t += largeBonus
	case words > mediumWordCount:
		t += smallBonus
	}

	switch sentences := len(nlp.Sentences(text)); {
	case sentences > longSentences:
		t += largeBonus
	case sentences > mediumSentences:
		t += smallBonus
	}

	if score.TechnicalDensity(normalized) > techDensityFloor {
		t += largeBonus
	}

	if t > maxThreshold {
		t = maxThreshold
	}
	return t
}
