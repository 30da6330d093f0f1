package nlp

import "strings"

// Part-of-speech tags used by extraction. Only verbs matter downstream;
// everything else is Other.
const (
	POSVerb  = "VERB"
	POSOther = "OTHER"
)

// TaggedToken pairs a token with its part-of-speech tag.
type TaggedToken struct {
	Token string
	POS   string
}

// Tagger assigns part-of-speech tags to a sentence. Implementations may be
// backed by any tagging library; the pipeline only depends on this contract.
type Tagger interface {
	Tag(sentence string) []TaggedToken
}

// LexiconTagger tags tokens against a fixed verb vocabulary. Deterministic
// and language-vocabulary driven, which matches the fixed action-verb set
// used by extraction.
type LexiconTagger struct {
	verbs map[string]struct{}
}

// NewLexiconTagger builds a tagger from a verb vocabulary.
func NewLexiconTagger(verbs []string) *LexiconTagger {
	m := make(map[string]struct{}, len(verbs))
	for _, v := range verbs {
		m[strings.ToLower(v)] = struct{}{}
	}
	return &LexiconTagger{verbs: m}
}

// Tag implements Tagger.
func (t *LexiconTagger) Tag(sentence string) []TaggedToken {
	words := strings.Fields(sentence)
	out := make([]TaggedToken, 0, len(words))
	for _, w := range words {
		token := strings.Trim(w, ".,!?;:\"'")
		pos := POSOther
		if _, ok := t.verbs[strings.ToLower(token)]; ok {
			pos = POSVerb
		}
		out = append(out, TaggedToken{Token: token, POS: pos})
	}
	return out
}
