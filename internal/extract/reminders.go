package extract

import (
	"sort"
	"strings"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/nlp"
)

// Reminders extracts a consolidated, urgency-ranked reminder list.
func (e *Extractor) Reminders(text string) []digest.ReminderItem {
	var candidates []digest.ReminderItem
	for _, sentence := range nlp.Sentences(text) {
		if r, ok := e.reminderCandidate(sentence); ok {
			candidates = append(candidates, r)
		}
	}
	return e.ConsolidateReminders(candidates, e.cfg.SimilarityThreshold)
}

// ConsolidateReminders merges near-duplicates, sorts by (urgency rank,
// confidence desc), and truncates.
func (e *Extractor) ConsolidateReminders(items []digest.ReminderItem, threshold float64) []digest.ReminderItem {
	merged := Consolidate(items, threshold,
		func(r digest.ReminderItem) digest.Category { return r.Category },
		func(r digest.ReminderItem) string { return r.Text },
		mergeReminders,
	)
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Urgency.Rank() != merged[j].Urgency.Rank() {
			return merged[i].Urgency.Rank() < merged[j].Urgency.Rank()
		}
		return merged[i].Confidence > merged[j].Confidence
	})
	if len(merged) > e.cfg.MaxReminders {
		merged = merged[:e.cfg.MaxReminders]
	}
	return merged
}

func (e *Extractor) reminderCandidate(sentence string) (digest.ReminderItem, bool) {
	lower := strings.ToLower(sentence)
	for _, rule := range reminderPatterns {
		if !strings.Contains(lower, rule.trigger) {
			continue
		}
		if rule.confidence < e.cfg.MinConfidence {
			return digest.ReminderItem{}, false
		}
		timeRef := TimeReference(sentence)
		category := rule.category
		if category == digest.CategoryGeneral {
			category = categoryOf(lower)
		}
		return digest.ReminderItem{
			Text:       formatItemText(sentence),
			Urgency:    urgencyFor(lower, timeRef),
			Category:   category,
			TimeRef:    timeRef,
			Confidence: rule.confidence,
		}, true
	}
	return digest.ReminderItem{}, false
}

// urgencyFor derives an urgency bucket from cue words and the extracted
// time reference.
func urgencyFor(lower, timeRef string) digest.Urgency {
	for _, cue := range urgentCues {
		if strings.Contains(lower, cue) {
			return digest.UrgencyImmediate
		}
	}
	switch {
	case timeRef == "":
		return digest.UrgencyLater
	case strings.Contains(timeRef, "today"),
		strings.Contains(timeRef, "tonight"),
		strings.Contains(timeRef, "this morning"),
		strings.Contains(timeRef, "this afternoon"),
		strings.Contains(timeRef, "this evening"),
		clockTimePattern.MatchString(timeRef):
		return digest.UrgencyToday
	case strings.Contains(timeRef, "tomorrow"),
		strings.Contains(timeRef, "this week"),
		strings.Contains(timeRef, "this weekend"),
		isWeekday(timeRef):
		return digest.UrgencyThisWeek
	default:
		return digest.UrgencyLater
	}
}

func isWeekday(timeRef string) bool {
	switch timeRef {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
