package extract

import (
	"regexp"
	"strings"
)

// Relative time vocabulary, ordered so longer phrases win over their
// substrings ("tomorrow morning" before "tomorrow").
var relativeTimeTerms = []string{
	"tomorrow morning", "tomorrow afternoon", "tomorrow evening", "tomorrow",
	"tonight", "this morning", "this afternoon", "this evening", "today",
	"this weekend", "this week", "next week", "next month",
	"end of the week", "end of day",
	"next monday", "next tuesday", "next wednesday", "next thursday",
	"next friday", "next saturday", "next sunday",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Explicit clock times: "3pm", "10:30 AM", "16:45".
var clockTimePattern = regexp.MustCompile(`(?i)\b\d{1,2}(:\d{2})?\s*(am|pm)\b|\b\d{1,2}:\d{2}\b`)

// TimeReference extracts the first time reference from a sentence, or ""
// when none is present.
func TimeReference(sentence string) string {
	lower := strings.ToLower(sentence)
	for _, term := range relativeTimeTerms {
		if strings.Contains(lower, term) {
			return term
		}
	}
	if m := clockTimePattern.FindString(sentence); m != "" {
		return m
	}
	return ""
}
