// Package chunker splits oversized transcripts into token-bounded chunks
// along content boundaries.
package chunker

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
)

const (
	// Rough token estimate: four characters per token.
	charsPerToken = 4

	// Speech rate used for display-only time estimates.
	wordsPerMinute = 150

	// MinChunkTokens guards against degenerate chunk budgets.
	MinChunkTokens = 64
)

// EstimateTokens approximates the token count of text.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// TokensForBytes converts a byte budget into a token budget.
func TokensForBytes(n int) int {
	return n / charsPerToken
}

// Split carves text into chunks of at most maxTokens estimated tokens,
// preferring paragraph boundaries, then sentence boundaries, then word
// boundaries. Sequence numbers are contiguous from 0 and spans are byte
// offsets into the original text.
func Split(text string, maxTokens int) []digest.TranscriptChunk {
	if maxTokens < MinChunkTokens {
		maxTokens = MinChunkTokens
	}
	budget := maxTokens * charsPerToken

	var chunks []digest.TranscriptChunk
	var cur strings.Builder
	curStart := 0
	offset := 0

	flush := func(end int) {
		if strings.TrimSpace(cur.String()) == "" {
			cur.Reset()
			curStart = end
			return
		}
		chunks = append(chunks, digest.TranscriptChunk{
			Seq:   len(chunks),
			Text:  cur.String(),
			Start: curStart,
			End:   end,
		})
		cur.Reset()
		curStart = end
	}

	for _, seg := range boundarySegments(text, budget) {
		if cur.Len() > 0 && cur.Len()+len(seg) > budget {
			flush(offset)
		}
		cur.WriteString(seg)
		offset += len(seg)
	}
	flush(offset)

	estimateTimes(chunks)
	return chunks
}

// boundarySegments yields text pieces that never exceed the byte budget,
// splitting first on paragraph breaks, then sentences, then words.
func boundarySegments(text string, budget int) []string {
	var segs []string
	for _, para := range splitAfter(text, "\n\n") {
		if len(para) <= budget {
			segs = append(segs, para)
			continue
		}
		for _, sent := range sentenceSegments(para) {
			if len(sent) <= budget {
				segs = append(segs, sent)
				continue
			}
			segs = append(segs, wordSegments(sent, budget)...)
		}
	}
	return segs
}

// splitAfter is strings.SplitAfter without dropping empty tails.
func splitAfter(s, sep string) []string {
	parts := strings.SplitAfter(s, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentenceSegments splits on terminal punctuation, keeping the delimiter
// and trailing whitespace attached so offsets stay exact.
func sentenceSegments(text string) []string {
	var segs []string
	start := 0
	b := []byte(text)
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '.' && c != '!' && c != '?' && c != '\n' {
			continue
		}
		// Extend through consecutive terminators and following spaces.
		j := i + 1
		for j < len(b) && (b[j] == '.' || b[j] == '!' || b[j] == '?' || b[j] == ' ' || b[j] == '\n') {
			j++
		}
		segs = append(segs, text[start:j])
		start = j
		i = j - 1
	}
	if start < len(text) {
		segs = append(segs, text[start:])
	}
	return segs
}

// wordSegments hard-splits an oversized sentence at word boundaries. A
// window with no space at all (spaceless scripts) is cut at the last rune
// boundary within the budget so chunks stay valid UTF-8.
func wordSegments(text string, budget int) []string {
	var segs []string
	start := 0
	for start < len(text) {
		end := start + budget
		if end >= len(text) {
			segs = append(segs, text[start:])
			break
		}
		cut := strings.LastIndexByte(text[start:end], ' ')
		if cut <= 0 {
			cut = runeBoundedCut(text[start:], budget)
		} else {
			cut++ // keep the space with the left segment
		}
		segs = append(segs, text[start:start+cut])
		start += cut
	}
	return segs
}

// runeBoundedCut backs a byte cut off to the nearest rune start at or
// before budget, always advancing by at least one rune.
func runeBoundedCut(text string, budget int) int {
	cut := budget
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == 0 {
		_, size := utf8.DecodeRuneInString(text)
		return size
	}
	return cut
}

// estimateTimes assigns display-only start/end estimates from cumulative
// word position at a fixed speech rate.
func estimateTimes(chunks []digest.TranscriptChunk) {
	wordsSoFar := 0
	for i := range chunks {
		start := durationForWords(wordsSoFar)
		wordsSoFar += len(strings.Fields(chunks[i].Text))
		chunks[i].StartTime = start
		chunks[i].EndTime = durationForWords(wordsSoFar)
	}
}

func durationForWords(n int) time.Duration {
	return time.Duration(float64(n) / wordsPerMinute * float64(time.Minute))
}
