package nlp

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Hello World", "hello world"},
		{"strips fillers", "so um I think uh we should like go", "so i think we should go"},
		{"you know filler", "it was, you know, fine", "it was, , fine"},
		{"collapses whitespace", "a   b\t\tc", "a b c"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeKeepsLikelike(t *testing.T) {
	// "like" is only a filler as a standalone word.
	got := Normalize("I liked the dislike button")
	if got != "i liked the dislike button" {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestWords(t *testing.T) {
	got := Words("Don't panic; it's fine. Call 911!")
	want := []string{"don't", "panic", "it's", "fine", "call", "911"}
	if len(got) != len(want) {
		t.Fatalf("Words() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two three"); got != 3 {
		t.Errorf("WordCount() = %d, want 3", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("WordCount(empty) = %d, want 0", got)
	}
}

func TestUniqueWordRatio(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  float64
	}{
		{"all unique", []string{"a", "b", "c", "d"}, 1.0},
		{"half unique", []string{"a", "a", "b", "b"}, 0.5},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueWordRatio(tt.words); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("UniqueWordRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"call", "mom", "today"}, []string{"call", "mom", "today"}, 1.0},
		{"disjoint", []string{"alpha", "beta"}, []string{"gamma", "delta"}, 0.0},
		{"partial", []string{"call", "mom"}, []string{"call", "dad"}, 1.0 / 3.0},
		{"duplicates collapse", []string{"call", "call", "mom"}, []string{"call", "mom"}, 1.0},
		{"both empty", nil, nil, 1.0},
		{"one empty", []string{"call"}, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	a := Words("send the report to sarah")
	b := Words("email sarah the report")
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Error("Jaccard is not symmetric")
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			"basic terminals",
			"First sentence. Second one! Third?",
			[]string{"First sentence.", "Second one!", "Third?"},
		},
		{
			"newline splits",
			"line one\nline two",
			[]string{"line one", "line two"},
		},
		{
			"decimal survives",
			"The budget is 3.5 million. Approved.",
			[]string{"The budget is 3.5 million.", "Approved."},
		},
		{
			"ellipsis is one boundary",
			"Well... maybe.",
			[]string{"Well...", "maybe."},
		},
		{
			"no terminal",
			"trailing fragment",
			[]string{"trailing fragment"},
		},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Sentences(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Sentences()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexiconTagger(t *testing.T) {
	tagger := NewLexiconTagger([]string{"call", "email", "schedule"})

	tagged := tagger.Tag("Please call Sarah.")
	if len(tagged) != 3 {
		t.Fatalf("Tag() returned %d tokens, want 3", len(tagged))
	}
	if tagged[1].POS != POSVerb {
		t.Errorf("token %q tagged %v, want verb", tagged[1].Token, tagged[1].POS)
	}
	if tagged[0].POS != POSOther {
		t.Errorf("token %q tagged %v, want other", tagged[0].Token, tagged[0].POS)
	}
	if tagged[2].Token != "Sarah" {
		t.Errorf("token = %q, want punctuation stripped", tagged[2].Token)
	}
}

func TestLexiconTaggerCaseInsensitive(t *testing.T) {
	tagger := NewLexiconTagger([]string{"call"})
	tagged := tagger.Tag("Call, now")
	if tagged[0].POS != POSVerb {
		t.Errorf("punctuated verb not recognized: %+v", tagged[0])
	}
}
