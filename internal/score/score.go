package score

import (
	"regexp"
	"strings"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/nlp"
)

// Scorer computes a [0,1] affinity score for a category. normalized is the
// filler-stripped lowercase text; original preserves casing and layout for
// structural signals. Scorers are pure and never fail; unmatched text
// scores 0.
type Scorer func(normalized, original string) float64

// ByType returns the registered category scorers. The classifier iterates
// this map, so adding a category means adding one entry here.
func ByType() map[digest.ContentType]Scorer {
	return map[digest.ContentType]Scorer{
		digest.ContentMeeting:   Meeting,
		digest.ContentJournal:   Journal,
		digest.ContentTechnical: Technical,
	}
}

// Meeting scores meeting-transcript affinity.
func Meeting(normalized, original string) float64 {
	kw := keywordScore(normalized, meetingKeywords)
	structural := patternScore(original, speakerTurnPattern, 5) +
		patternScore(original, timestampPattern, 5)
	if structural > 1 {
		structural = 1
	}
	density := densityScore(normalized, meetingKeywords)
	return combine(kw, structural, density)
}

// Journal scores personal-journal affinity. Structure here is first-person
// narration density rather than layout.
func Journal(normalized, original string) float64 {
	kw := keywordScore(normalized, journalKeywords)
	words := nlp.WordCount(normalized)
	structural := 0.0
	if words > 0 {
		fp := float64(len(firstPersonPattern.FindAllString(original, -1))) / float64(words)
		structural = clamp(fp * 5)
	}
	density := densityScore(normalized, journalKeywords)
	return combine(kw, structural, density)
}

// Technical scores technical-content affinity.
func Technical(normalized, original string) float64 {
	kw := keywordScore(normalized, technicalKeywords)
	structural := patternScore(original, codeTokenPattern, 5)
	density := densityScore(normalized, technicalKeywords)
	return combine(kw, structural, density)
}

// TechnicalDensity returns technical keyword hits per word, used by the
// classifier's confidence threshold.
func TechnicalDensity(normalized string) float64 {
	words := nlp.WordCount(normalized)
	if words == 0 {
		return 0
	}
	return float64(keywordHits(normalized, technicalKeywords)) / float64(words)
}

// SentenceImportance scores a sentence for extractive ranking: length
// banding, keyword hits, and document position, with a repetition penalty.
func SentenceImportance(sentence, fullText string) float64 {
	words := nlp.Words(sentence)
	if len(words) == 0 {
		return 0
	}

	s := importanceBase
	if len(words) >= idealMinWords && len(words) <= idealMaxWords {
		s += lengthBonus
	}

	lower := strings.ToLower(sentence)
	bonus := 0.0
	for _, kw := range importanceKeywords {
		if strings.Contains(lower, kw) {
			bonus += keywordBonus
		}
	}
	if bonus > keywordBonusCap {
		bonus = keywordBonusCap
	}
	s += bonus

	sentences := nlp.Sentences(fullText)
	if n := len(sentences); n > 0 {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == sentences[0] || trimmed == sentences[n-1] {
			s += positionBonus
		}
	}

	s = clamp(s)
	if nlp.UniqueWordRatio(words) < repetitionRatio {
		s *= repetitionPenalty
	}
	return s
}

func keywordScore(text string, keywords []string) float64 {
	return clamp(float64(keywordHits(text, keywords)) / keywordDivisor)
}

func keywordHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		hits += strings.Count(text, kw)
	}
	return hits
}

func densityScore(text string, keywords []string) float64 {
	words := nlp.WordCount(text)
	if words == 0 {
		return 0
	}
	ratio := float64(keywordHits(text, keywords)) / float64(words)
	return clamp(ratio * 10)
}

func patternScore(text string, re *regexp.Regexp, norm float64) float64 {
	return clamp(float64(len(re.FindAllString(text, -1))) / norm)
}

func combine(kw, structural, density float64) float64 {
	return clamp(kw*keywordWeight + structural*structuralWeight + density*densityWeight)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
