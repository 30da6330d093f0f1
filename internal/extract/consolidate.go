package extract

import (
	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/nlp"
)

// Similar reports whether two item texts of the same category should be
// merged: content-word Jaccard overlap strictly above the threshold.
func Similar(a, b string, threshold float64) bool {
	return contentJaccard(a, b) > threshold
}

// contentJaccard is word-set overlap after stopword removal, so candidates
// phrased differently around the same content words still cluster.
func contentJaccard(a, b string) float64 {
	wa, wb := contentWords(a), contentWords(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	return nlp.Jaccard(wa, wb)
}

func contentWords(text string) []string {
	var out []string
	for _, w := range nlp.Words(text) {
		if _, stop := similarityStopwords[w]; !stop {
			out = append(out, w)
		}
	}
	return out
}

// Consolidate groups similar items (same category, overlap above the
// threshold) and merges each group into one item. Grouping is a single
// O(n²) pass against not-yet-grouped items, repeated until no further
// merges occur so the result is stable under re-consolidation.
func Consolidate[T any](
	items []T,
	threshold float64,
	category func(T) digest.Category,
	text func(T) string,
	merge func(group []T) T,
) []T {
	for {
		out, merged := consolidateOnce(items, threshold, category, text, merge)
		if !merged {
			return out
		}
		items = out
	}
}

func consolidateOnce[T any](
	items []T,
	threshold float64,
	category func(T) digest.Category,
	text func(T) string,
	merge func(group []T) T,
) ([]T, bool) {
	out := make([]T, 0, len(items))
	grouped := make([]bool, len(items))
	anyMerge := false

	for i := range items {
		if grouped[i] {
			continue
		}
		group := []T{items[i]}
		grouped[i] = true
		for j := i + 1; j < len(items); j++ {
			if grouped[j] {
				continue
			}
			if category(items[i]) == category(items[j]) &&
				Similar(text(items[i]), text(items[j]), threshold) {
				group = append(group, items[j])
				grouped[j] = true
			}
		}
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		anyMerge = true
		out = append(out, merge(group))
	}
	return out, anyMerge
}

// mergeTasks merges a similarity group: longest text reformatted, highest
// priority, mean confidence, first non-empty time reference.
func mergeTasks(group []digest.TaskItem) digest.TaskItem {
	merged := group[0]
	var confSum float64
	for _, t := range group {
		confSum += t.Confidence
		if len(t.Text) > len(merged.Text) {
			merged.Text = t.Text
		}
		if t.Priority.Rank() < merged.Priority.Rank() {
			merged.Priority = t.Priority
		}
		if merged.TimeRef == "" && t.TimeRef != "" {
			merged.TimeRef = t.TimeRef
		}
	}
	merged.Text = formatItemText(merged.Text)
	merged.Confidence = confSum / float64(len(group))
	return merged
}

// mergeReminders mirrors mergeTasks with the urgency axis: the group's
// most urgent value wins.
func mergeReminders(group []digest.ReminderItem) digest.ReminderItem {
	merged := group[0]
	var confSum float64
	for _, r := range group {
		confSum += r.Confidence
		if len(r.Text) > len(merged.Text) {
			merged.Text = r.Text
		}
		if r.Urgency.Rank() < merged.Urgency.Rank() {
			merged.Urgency = r.Urgency
		}
		if merged.TimeRef == "" && r.TimeRef != "" {
			merged.TimeRef = r.TimeRef
		}
	}
	merged.Text = formatItemText(merged.Text)
	merged.Confidence = confSum / float64(len(group))
	return merged
}

// mergeTitles keeps the longest candidate and averages confidence.
func mergeTitles(group []digest.TitleItem) digest.TitleItem {
	merged := group[0]
	var confSum float64
	for _, t := range group {
		confSum += t.Confidence
		if len(t.Text) > len(merged.Text) {
			merged.Text = t.Text
		}
	}
	merged.Confidence = confSum / float64(len(group))
	return merged
}
