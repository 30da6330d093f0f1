// Package extract pulls actionable tasks, reminders, and candidate titles
// out of transcript text.
package extract

import (
	"github.com/GriffinCanCode/transcript-digest/internal/digest"
)

// Extraction configuration defaults.
const (
	DefaultMinConfidence       = 0.5
	DefaultSimilarityThreshold = 0.6
	DefaultMaxTasks            = 10
	DefaultMaxReminders        = 8
	DefaultMaxTitles           = 5
)

// Strategy base confidences.
const (
	verbObjectConfidence = 0.65
	imperativeConfidence = 0.7
)

// patternRule maps a case-insensitive substring to a category, base
// priority, and confidence. First match wins per sentence.
type patternRule struct {
	pattern    string
	category   digest.Category
	priority   digest.Priority
	confidence float64
}

var taskPatterns = []patternRule{
	{"schedule a meeting", digest.CategoryMeeting, digest.PriorityMedium, 0.8},
	{"set up a meeting", digest.CategoryMeeting, digest.PriorityMedium, 0.8},
	{"book a flight", digest.CategoryTravel, digest.PriorityMedium, 0.8},
	{"book a hotel", digest.CategoryTravel, digest.PriorityMedium, 0.8},
	{"meet with", digest.CategoryMeeting, digest.PriorityMedium, 0.7},
	{"reply to", digest.CategoryEmail, digest.PriorityMedium, 0.7},
	{"look into", digest.CategoryResearch, digest.PriorityMedium, 0.7},
	{"find out", digest.CategoryResearch, digest.PriorityMedium, 0.65},
	{"pick up", digest.CategoryPurchase, digest.PriorityMedium, 0.7},
	{"trip to", digest.CategoryTravel, digest.PriorityLow, 0.65},
	{"call", digest.CategoryCall, digest.PriorityMedium, 0.75},
	{"phone", digest.CategoryCall, digest.PriorityMedium, 0.7},
	{"email", digest.CategoryEmail, digest.PriorityMedium, 0.75},
	{"buy", digest.CategoryPurchase, digest.PriorityMedium, 0.75},
	{"purchase", digest.CategoryPurchase, digest.PriorityMedium, 0.75},
	{"order", digest.CategoryPurchase, digest.PriorityMedium, 0.7},
	{"research", digest.CategoryResearch, digest.PriorityMedium, 0.7},
	{"investigate", digest.CategoryResearch, digest.PriorityMedium, 0.7},
	{"doctor", digest.CategoryHealth, digest.PriorityMedium, 0.7},
	{"dentist", digest.CategoryHealth, digest.PriorityMedium, 0.7},
	{"prescription", digest.CategoryHealth, digest.PriorityMedium, 0.7},
	{"appointment", digest.CategoryHealth, digest.PriorityMedium, 0.65},
	{"submit", digest.CategoryGeneral, digest.PriorityMedium, 0.7},
	{"pay the", digest.CategoryGeneral, digest.PriorityMedium, 0.7},
	{"finish the", digest.CategoryGeneral, digest.PriorityMedium, 0.65},
}

// Action verbs for the verb+object strategy, with category routing.
var actionVerbCategories = map[string]digest.Category{
	"call":     digest.CategoryCall,
	"phone":    digest.CategoryCall,
	"email":    digest.CategoryEmail,
	"send":     digest.CategoryEmail,
	"buy":      digest.CategoryPurchase,
	"order":    digest.CategoryPurchase,
	"purchase": digest.CategoryPurchase,
	"research": digest.CategoryResearch,
	"review":   digest.CategoryResearch,
	"schedule": digest.CategoryMeeting,
	"book":     digest.CategoryTravel,
	"finish":   digest.CategoryGeneral,
	"prepare":  digest.CategoryGeneral,
	"submit":   digest.CategoryGeneral,
	"fix":      digest.CategoryGeneral,
	"update":   digest.CategoryGeneral,
	"write":    digest.CategoryGeneral,
	"clean":    digest.CategoryGeneral,
	"pay":      digest.CategoryGeneral,
	"check":    digest.CategoryGeneral,
}

// Sentence-initial imperative markers.
var imperativeMarkers = []string{
	"remember to",
	"remember that",
	"make sure",
	"don't forget",
	"be sure to",
	"i need to",
	"we need to",
	"you need to",
	"i have to",
	"we have to",
	"i must",
	"we should",
}

// contextRule routes a sentence by a keyword trigger regardless of verb
// structure.
type contextRule struct {
	trigger    string
	category   digest.Category
	priority   digest.Priority
	confidence float64
}

var contextTriggers = []contextRule{
	{"action item", digest.CategoryGeneral, digest.PriorityHigh, 0.8},
	{"deadline", digest.CategoryGeneral, digest.PriorityHigh, 0.75},
	{"shopping list", digest.CategoryPurchase, digest.PriorityMedium, 0.7},
	{"to-do", digest.CategoryGeneral, digest.PriorityMedium, 0.7},
	{"todo", digest.CategoryGeneral, digest.PriorityMedium, 0.7},
	{"homework", digest.CategoryResearch, digest.PriorityMedium, 0.65},
	{"assignment", digest.CategoryResearch, digest.PriorityMedium, 0.65},
}

// Urgency cues force priority regardless of strategy defaults.
var urgentCues = []string{
	"urgent", "asap", "as soon as possible", "immediately", "right away",
	"critical", "by end of day", "end of day", "eod",
}

var hedgeCues = []string{
	"maybe", "eventually", "sometime", "someday", "at some point", "if possible",
}

// Reminder-specific triggers.
var reminderPatterns = []contextRule{
	{"remind me", digest.CategoryGeneral, digest.PriorityMedium, 0.8},
	{"don't forget", digest.CategoryGeneral, digest.PriorityMedium, 0.8},
	{"remember to", digest.CategoryGeneral, digest.PriorityMedium, 0.75},
	{"due", digest.CategoryGeneral, digest.PriorityMedium, 0.7},
	{"appointment", digest.CategoryHealth, digest.PriorityMedium, 0.7},
	{"deadline", digest.CategoryGeneral, digest.PriorityMedium, 0.7},
	{"expires", digest.CategoryGeneral, digest.PriorityMedium, 0.7},
	{"renew", digest.CategoryGeneral, digest.PriorityMedium, 0.65},
	{"follow up", digest.CategoryGeneral, digest.PriorityMedium, 0.65},
}

// Stopwords excluded from similarity comparison so near-duplicate phrasing
// ("Email the report" / "Send report by email") clusters on content words.
var similarityStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"at": {}, "by": {}, "for": {}, "with": {}, "and": {}, "or": {}, "but": {},
	"is": {}, "are": {}, "was": {}, "be": {}, "it": {}, "this": {}, "that": {},
	"i": {}, "we": {}, "you": {}, "my": {}, "our": {}, "your": {},
	"also": {}, "need": {}, "needs": {}, "please": {}, "about": {},
}
