package nlp

import "strings"

// Sentences splits text into trimmed sentences on terminal punctuation and
// blank lines. Decimal points inside numbers do not split.
func Sentences(text string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(text)

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			out = append(out, s)
		}
		b.Reset()
	}

	for i, r := range runes {
		switch r {
		case '.', '!', '?':
			b.WriteRune(r)
			if r == '.' && i+1 < len(runes) && isDigit(runes[i+1]) && i > 0 && isDigit(runes[i-1]) {
				continue // decimal number
			}
			// Consume trailing terminal punctuation as one boundary.
			if i+1 < len(runes) && isTerminal(runes[i+1]) {
				continue
			}
			flush()
		case '\n':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
