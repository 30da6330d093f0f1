// Package nlp provides text normalization and lightweight linguistic helpers.
package nlp

import (
	"regexp"
	"strings"
)

// Filler words stripped before scoring, never before display.
var fillerPattern = regexp.MustCompile(`(?i)\b(um+|uh+|erm|like|you know)\b`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize lowercases text and strips filler words for scoring.
func Normalize(text string) string {
	s := fillerPattern.ReplaceAllString(text, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// Words splits text into lowercase word tokens, dropping punctuation.
func Words(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '\'':
		// Keep contractions together ("don't").
		return true
	default:
		return false
	}
}

// WordCount returns the number of word tokens in text.
func WordCount(text string) int {
	return len(Words(text))
}

// UniqueWordRatio returns unique words / total words, 0 for empty input.
func UniqueWordRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	return float64(len(seen)) / float64(len(words))
}

// Jaccard computes set overlap between two word lists in [0,1]. Callers
// tokenize (and filter) first so the same metric serves raw text and
// stopword-stripped comparisons.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, w := range a {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, w := range b {
		setB[w] = struct{}{}
	}
	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}
