package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/GriffinCanCode/transcript-digest/internal/classify"
	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/extract"
	"github.com/GriffinCanCode/transcript-digest/internal/nlp"
	"github.com/GriffinCanCode/transcript-digest/internal/score"
)

// Heuristic engine defaults.
const (
	DefaultHeuristicBudget = 4096
	summarySentences       = 5
	metaSummarySentences   = 8
)

// Heuristic is a self-contained extractive engine built on the scorer,
// classifier, and extractor packages. It performs no I/O and never fails,
// which makes it the default for headless deployments and tests.
type Heuristic struct {
	extractor *extract.Extractor
	budget    int
}

// NewHeuristic creates the extractive engine. A nil extractor uses
// defaults; a non-positive budget takes the default.
func NewHeuristic(extractor *extract.Extractor, budget int) *Heuristic {
	if extractor == nil {
		extractor = extract.New(extract.Config{}, nil)
	}
	if budget <= 0 {
		budget = DefaultHeuristicBudget
	}
	return &Heuristic{extractor: extractor, budget: budget}
}

// ProcessChunk implements Engine.
func (h *Heuristic) ProcessChunk(ctx context.Context, text string) (digest.ChunkResult, error) {
	if err := ctx.Err(); err != nil {
		return digest.ChunkResult{}, err
	}
	start := time.Now()

	cls := classify.Classify(text)
	result := digest.ChunkResult{
		Summary:     extractiveSummary(text, summarySentences),
		Tasks:       h.extractor.Tasks(text),
		Reminders:   h.extractor.Reminders(text),
		Titles:      h.extractor.Titles(text, cls.Type, cls.Confidence),
		ContentType: cls.Type,
		Confidence:  cls.Confidence,
	}
	result.ProcessingTime = time.Since(start)
	return result, nil
}

// MetaSummarize implements Engine by re-summarizing the concatenated
// chunk summaries extractively.
func (h *Heuristic) MetaSummarize(ctx context.Context, combined string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return extractiveSummary(combined, metaSummarySentences), nil
}

// Identity implements Engine.
func (h *Heuristic) Identity() string {
	return "heuristic/v1"
}

// TokenBudget implements Engine.
func (h *Heuristic) TokenBudget() int {
	return h.budget
}

// extractiveSummary keeps the top-scoring sentences in original order.
func extractiveSummary(text string, maxSentences int) string {
	sentences := nlp.Sentences(text)
	if len(sentences) <= maxSentences {
		return strings.TrimSpace(text)
	}

	type ranked struct {
		idx        int
		importance float64
	}
	scores := make([]ranked, len(sentences))
	for i, s := range sentences {
		scores[i] = ranked{idx: i, importance: score.SentenceImportance(s, text)}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].importance > scores[j].importance
	})

	keep := scores[:maxSentences]
	sort.Slice(keep, func(i, j int) bool { return keep[i].idx < keep[j].idx })

	parts := make([]string, 0, len(keep))
	for _, r := range keep {
		parts = append(parts, sentences[r.idx])
	}
	return strings.Join(parts, " ")
}
