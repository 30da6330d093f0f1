package extract

import (
	"sort"
	"strings"
	"unicode"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/nlp"
)

// Config tunes extraction. Zero values take defaults.
type Config struct {
	MinConfidence       float64
	SimilarityThreshold float64
	MaxTasks            int
	MaxReminders        int
	MaxTitles           int
}

func (c Config) withDefaults() Config {
	if c.MinConfidence <= 0 {
		c.MinConfidence = DefaultMinConfidence
	}
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if c.MaxTasks <= 0 {
		c.MaxTasks = DefaultMaxTasks
	}
	if c.MaxReminders <= 0 {
		c.MaxReminders = DefaultMaxReminders
	}
	if c.MaxTitles <= 0 {
		c.MaxTitles = DefaultMaxTitles
	}
	return c
}

// Extractor runs multi-strategy task and reminder extraction. Extraction
// never fails; sentences that match nothing contribute no candidates.
type Extractor struct {
	cfg    Config
	tagger nlp.Tagger
}

// New creates an extractor. A nil tagger falls back to the built-in
// lexicon tagger over the fixed action-verb vocabulary.
func New(cfg Config, tagger nlp.Tagger) *Extractor {
	if tagger == nil {
		verbs := make([]string, 0, len(actionVerbCategories))
		for v := range actionVerbCategories {
			verbs = append(verbs, v)
		}
		tagger = nlp.NewLexiconTagger(verbs)
	}
	return &Extractor{cfg: cfg.withDefaults(), tagger: tagger}
}

// Config returns the effective configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Tasks extracts a consolidated, ranked, capped task list from text.
func (e *Extractor) Tasks(text string) []digest.TaskItem {
	var candidates []digest.TaskItem
	for _, sentence := range nlp.Sentences(text) {
		candidates = append(candidates, e.taskCandidates(sentence)...)
	}
	return e.ConsolidateTasks(candidates, e.cfg.SimilarityThreshold)
}

// ConsolidateTasks merges near-duplicate tasks at the given similarity
// threshold, sorts by (priority severity, confidence desc), and truncates.
func (e *Extractor) ConsolidateTasks(items []digest.TaskItem, threshold float64) []digest.TaskItem {
	merged := Consolidate(items, threshold,
		func(t digest.TaskItem) digest.Category { return t.Category },
		func(t digest.TaskItem) string { return t.Text },
		mergeTasks,
	)
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Priority.Rank() != merged[j].Priority.Rank() {
			return merged[i].Priority.Rank() < merged[j].Priority.Rank()
		}
		return merged[i].Confidence > merged[j].Confidence
	})
	if len(merged) > e.cfg.MaxTasks {
		merged = merged[:e.cfg.MaxTasks]
	}
	return merged
}

// taskCandidates runs all four strategies on one sentence. Each strategy
// may contribute independently; candidates below the confidence floor are
// dropped.
func (e *Extractor) taskCandidates(sentence string) []digest.TaskItem {
	var out []digest.TaskItem
	lower := strings.ToLower(sentence)
	timeRef := TimeReference(sentence)

	add := func(t digest.TaskItem) {
		if t.Confidence < e.cfg.MinConfidence {
			return
		}
		t.Priority = adjustPriority(t.Priority, lower)
		t.TimeRef = timeRef
		out = append(out, t)
	}

	if t, ok := e.patternStrategy(sentence, lower); ok {
		add(t)
	}
	if t, ok := e.verbObjectStrategy(sentence); ok {
		add(t)
	}
	if t, ok := e.imperativeStrategy(sentence, lower); ok {
		add(t)
	}
	if t, ok := e.contextualStrategy(sentence, lower); ok {
		add(t)
	}
	return out
}

// patternStrategy checks the substring pattern table; first match wins.
func (e *Extractor) patternStrategy(sentence, lower string) (digest.TaskItem, bool) {
	for _, rule := range taskPatterns {
		if strings.Contains(lower, rule.pattern) {
			return digest.TaskItem{
				Text:       formatItemText(sentence),
				Priority:   rule.priority,
				Category:   rule.category,
				Confidence: rule.confidence,
			}, true
		}
	}
	return digest.TaskItem{}, false
}

// verbObjectStrategy locates the first action verb and takes the sentence
// remainder as its object. Skipped when the remainder is empty.
func (e *Extractor) verbObjectStrategy(sentence string) (digest.TaskItem, bool) {
	tokens := e.tagger.Tag(sentence)
	for i, tok := range tokens {
		if tok.POS != nlp.POSVerb {
			continue
		}
		verb := strings.ToLower(tok.Token)
		category, ok := actionVerbCategories[verb]
		if !ok {
			continue
		}
		var rest []string
		for _, t := range tokens[i+1:] {
			rest = append(rest, t.Token)
		}
		object := strings.TrimSpace(strings.Join(rest, " "))
		if object == "" {
			return digest.TaskItem{}, false
		}
		return digest.TaskItem{
			Text:       formatItemText(verb + " " + object),
			Priority:   digest.PriorityMedium,
			Category:   category,
			Confidence: verbObjectConfidence,
		}, true
	}
	return digest.TaskItem{}, false
}

// imperativeStrategy fires on sentence-initial imperative markers and
// takes the whole sentence as the task text.
func (e *Extractor) imperativeStrategy(sentence, lower string) (digest.TaskItem, bool) {
	for _, marker := range imperativeMarkers {
		if strings.HasPrefix(lower, marker) {
			return digest.TaskItem{
				Text:       formatItemText(sentence),
				Priority:   digest.PriorityMedium,
				Category:   categoryOf(lower),
				Confidence: imperativeConfidence,
			}, true
		}
	}
	return digest.TaskItem{}, false
}

// contextualStrategy routes sentences by keyword trigger regardless of
// verb structure, reformatting away the trigger prefix when present.
func (e *Extractor) contextualStrategy(sentence, lower string) (digest.TaskItem, bool) {
	for _, rule := range contextTriggers {
		idx := strings.Index(lower, rule.trigger)
		if idx < 0 {
			continue
		}
		text := sentence
		// "Action item: review the budget" keeps only the item itself.
		tail := strings.TrimLeft(sentence[idx+len(rule.trigger):], " :-,")
		if tail != "" {
			text = tail
		}
		return digest.TaskItem{
			Text:       formatItemText(text),
			Priority:   rule.priority,
			Category:   rule.category,
			Confidence: rule.confidence,
		}, true
	}
	return digest.TaskItem{}, false
}

// adjustPriority applies urgency cues: urgent words force high, hedges
// force low.
func adjustPriority(p digest.Priority, lower string) digest.Priority {
	for _, cue := range urgentCues {
		if strings.Contains(lower, cue) {
			return digest.PriorityHigh
		}
	}
	for _, cue := range hedgeCues {
		if strings.Contains(lower, cue) {
			return digest.PriorityLow
		}
	}
	return p
}

// categoryOf routes free-form text to the first matching pattern category.
func categoryOf(lower string) digest.Category {
	for _, rule := range taskPatterns {
		if strings.Contains(lower, rule.pattern) {
			return rule.category
		}
	}
	return digest.CategoryGeneral
}

// formatItemText trims, strips terminal punctuation, and capitalizes.
func formatItemText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!?,;: ")
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
