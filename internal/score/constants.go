// Package score computes normalized affinity and importance scores for text.
package score

import "regexp"

// Keyword hits are normalized by this divisor and clamped to 1.0.
const keywordDivisor = 10.0

// Component weights; every category scorer combines the same three signals.
const (
	keywordWeight    = 0.5
	structuralWeight = 0.3
	densityWeight    = 0.2
)

// Sentence importance banding.
const (
	importanceBase    = 0.2
	idealMinWords     = 8
	idealMaxWords     = 25
	lengthBonus       = 0.3
	positionBonus     = 0.2
	keywordBonus      = 0.1
	keywordBonusCap   = 0.3
	repetitionRatio   = 0.6
	repetitionPenalty = 0.5
)

var meetingKeywords = []string{
	"meeting", "agenda", "action item", "minutes", "attendees", "discussion",
	"follow up", "schedule", "presentation", "deadline", "project", "team",
	"sync", "standup", "stakeholder", "review", "quarterly", "roadmap",
	"decision", "assigned",
}

var journalKeywords = []string{
	"i feel", "i felt", "today i", "grateful", "worried", "anxious", "happy",
	"excited", "my day", "thinking about", "i wish", "i hope", "remember when",
	"personally", "reflection", "journal", "emotional", "i realized",
}

var technicalKeywords = []string{
	"api", "database", "server", "deploy", "deployment", "function", "bug",
	"code", "algorithm", "latency", "endpoint", "repository", "merge",
	"commit", "refactor", "kubernetes", "docker", "compile", "framework",
	"query", "backend", "frontend", "pipeline", "release",
}

var importanceKeywords = []string{
	"important", "critical", "key", "must", "need", "deadline", "decision",
	"remember", "urgent", "priority", "action",
}

// Structural signal patterns.
var (
	// Speaker turns like "Alice:" at line start.
	speakerTurnPattern = regexp.MustCompile(`(?m)^\s*[A-Z][a-z]+\s*:`)

	// Clock times like "3:45" or "10:30 AM".
	timestampPattern = regexp.MustCompile(`\b\d{1,2}:\d{2}(\s?[AaPp][Mm])?\b`)

	// Code-like tokens: method calls, URLs, version strings.
	codeTokenPattern = regexp.MustCompile(`\w+\.\w+\(\)|https?://\S+|\bv?\d+\.\d+\.\d+\b`)

	// First-person narration.
	firstPersonPattern = regexp.MustCompile(`(?i)\b(i|my|me|myself)\b`)
)
