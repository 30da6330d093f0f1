package classify

import (
	"strings"
	"testing"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
)

const meetingText = `Alice: Let's review the agenda for the quarterly meeting.
Bob: The first action item is the roadmap discussion.
Alice: Agreed, and we need a follow up with the stakeholders before the deadline.`

const journalText = `Today I felt grateful for the small things. I realized my day
went better than expected and I hope tomorrow is the same. Personally I am
still a little anxious about the move.`

const technicalText = `We need to deploy the api server v2.1.3 after the database
migration. The pipeline failed because client.connect() hit a latency bug in the
backend code. See https://ci.example.com/build for the query logs before the release.`

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want digest.ContentType
	}{
		{"meeting transcript", meetingText, digest.ContentMeeting},
		{"personal journal", journalText, digest.ContentJournal},
		{"technical with code tokens", technicalText, digest.ContentTechnical},
		{"no signal falls back to general", "The weather was fine and nothing much happened on the walk.", digest.ContentGeneral},
		{"empty text", "", digest.ContentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got.Type != tt.want {
				t.Errorf("Classify().Type = %v (conf %v), want %v", got.Type, got.Confidence, tt.want)
			}
			if got.Passed != (tt.want != digest.ContentGeneral) {
				t.Errorf("Classify().Passed = %v for %v", got.Passed, got.Type)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	a := Classify(meetingText)
	b := Classify(meetingText)
	if a != b {
		t.Errorf("Classify not deterministic: %+v vs %+v", a, b)
	}
}

func TestClassifyConfidenceRange(t *testing.T) {
	for _, text := range []string{meetingText, journalText, "", "hello there"} {
		r := Classify(text)
		if r.Confidence < 0 || r.Confidence > 1 {
			t.Errorf("Confidence = %v for %q, want [0,1]", r.Confidence, text)
		}
	}
}

func TestThresholdBase(t *testing.T) {
	// Short, simple, non-technical text keeps the base threshold.
	if got := Threshold("A few plain words."); got != 0.3 {
		t.Errorf("Threshold() = %v, want 0.3", got)
	}
}

func TestThresholdWordCountBonus(t *testing.T) {
	medium := strings.Repeat("plain filler words without signal ", 50) // ~250 words, 1 sentence
	long := strings.Repeat("plain filler words without signal ", 120) // ~600 words

	if got := Threshold(medium); got != 0.35 {
		t.Errorf("Threshold(medium) = %v, want 0.35", got)
	}
	if got := Threshold(long); got != 0.4 {
		t.Errorf("Threshold(long) = %v, want 0.4", got)
	}
}

func TestThresholdSentenceBonus(t *testing.T) {
	medium := strings.Repeat("Short one. ", 15) // 11-20 sentences band
	long := strings.Repeat("Short one. ", 25)   // >20 sentences

	if got := Threshold(medium); got != 0.35 {
		t.Errorf("Threshold(medium sentences) = %v, want 0.35", got)
	}
	if got := Threshold(long); got != 0.4 {
		t.Errorf("Threshold(long sentences) = %v, want 0.4", got)
	}
}

func TestThresholdTechnicalBonus(t *testing.T) {
	// 2 technical hits in 4 words clears the density floor.
	if got := Threshold("api and server down"); got != 0.4 {
		t.Errorf("Threshold(technical) = %v, want 0.4", got)
	}
}

func TestThresholdCapped(t *testing.T) {
	// Long, sentence-heavy, and technically dense at once still caps at 0.6.
	text := strings.Repeat("The api server deploy broke the database pipeline again today. ", 60)
	if got := Threshold(text); got != 0.6 {
		t.Errorf("Threshold() = %v, want cap 0.6", got)
	}
}

func TestThresholdMonotonicInLength(t *testing.T) {
	short := "Plain words here."
	long := strings.Repeat("Plain words here without any category signal at all. ", 60)
	if Threshold(long) < Threshold(short) {
		t.Error("threshold decreased as text grew")
	}
}
