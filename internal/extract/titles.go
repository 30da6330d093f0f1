package extract

import (
	"sort"
	"strings"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/nlp"
	"github.com/GriffinCanCode/transcript-digest/internal/score"
)

const titleMaxWords = 8

// Titles generates candidate titles from the highest-importance sentences
// plus a content-type template, consolidated like tasks.
func (e *Extractor) Titles(text string, contentType digest.ContentType, typeConfidence float64) []digest.TitleItem {
	sentences := nlp.Sentences(text)

	var candidates []digest.TitleItem
	for _, s := range sentences {
		importance := score.SentenceImportance(s, text)
		if importance < e.cfg.MinConfidence {
			continue
		}
		candidates = append(candidates, digest.TitleItem{
			Text:       titleFrom(s),
			Category:   categoryOf(strings.ToLower(s)),
			Confidence: importance,
		})
	}

	if tmpl := templateTitle(contentType); tmpl != "" && typeConfidence >= e.cfg.MinConfidence {
		candidates = append(candidates, digest.TitleItem{
			Text:       tmpl,
			Category:   digest.CategoryGeneral,
			Confidence: typeConfidence,
		})
	}

	return e.ConsolidateTitles(candidates, e.cfg.SimilarityThreshold)
}

// ConsolidateTitles merges near-duplicates, sorts by confidence, and
// truncates.
func (e *Extractor) ConsolidateTitles(items []digest.TitleItem, threshold float64) []digest.TitleItem {
	merged := Consolidate(items, threshold,
		func(t digest.TitleItem) digest.Category { return t.Category },
		func(t digest.TitleItem) string { return t.Text },
		mergeTitles,
	)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	if len(merged) > e.cfg.MaxTitles {
		merged = merged[:e.cfg.MaxTitles]
	}
	return merged
}

// titleFrom truncates a sentence to a title-sized fragment.
func titleFrom(sentence string) string {
	words := strings.Fields(strings.TrimSpace(sentence))
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}
	return formatItemText(strings.Join(words, " "))
}

func templateTitle(ct digest.ContentType) string {
	switch ct {
	case digest.ContentMeeting:
		return "Meeting Notes"
	case digest.ContentJournal:
		return "Journal Entry"
	case digest.ContentTechnical:
		return "Technical Discussion"
	default:
		return ""
	}
}
