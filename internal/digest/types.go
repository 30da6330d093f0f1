// Package digest defines the structured output produced from a transcript.
package digest

import "time"

// ContentType classifies what kind of transcript was analyzed.
type ContentType string

const (
	ContentMeeting   ContentType = "meeting"
	ContentJournal   ContentType = "personal_journal"
	ContentTechnical ContentType = "technical"
	ContentGeneral   ContentType = "general"
)

// Priority orders tasks by severity.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the severity rank; lower is more severe.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Urgency orders reminders by how soon they matter.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyToday     Urgency = "today"
	UrgencyThisWeek  Urgency = "this_week"
	UrgencyLater     Urgency = "later"
)

// Rank returns the urgency rank; lower is more urgent.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyImmediate:
		return 0
	case UrgencyToday:
		return 1
	case UrgencyThisWeek:
		return 2
	default:
		return 3
	}
}

// Category routes an extracted item to a kind of action.
type Category string

const (
	CategoryCall     Category = "call"
	CategoryEmail    Category = "email"
	CategoryMeeting  Category = "meeting"
	CategoryPurchase Category = "purchase"
	CategoryResearch Category = "research"
	CategoryTravel   Category = "travel"
	CategoryHealth   Category = "health"
	CategoryGeneral  Category = "general"
)

// TaskItem is one actionable item extracted from the transcript.
// Confidence is assigned at creation and only ever averaged during
// consolidation, never re-derived.
type TaskItem struct {
	Text       string   `json:"text"`
	Priority   Priority `json:"priority"`
	Category   Category `json:"category"`
	TimeRef    string   `json:"time_ref,omitempty"`
	Confidence float64  `json:"confidence"`
}

// ReminderItem is a time-sensitive item with an urgency axis.
type ReminderItem struct {
	Text       string   `json:"text"`
	Urgency    Urgency  `json:"urgency"`
	Category   Category `json:"category"`
	TimeRef    string   `json:"time_ref,omitempty"`
	Confidence float64  `json:"confidence"`
}

// TitleItem is a candidate title for the digest.
type TitleItem struct {
	Text       string   `json:"text"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// TranscriptChunk is a contiguous slice of the original text. Seq numbers
// form a contiguous [0,n) range; Start/End are byte offsets into the
// original. Time estimates are for display continuity only.
type TranscriptChunk struct {
	Seq       int
	Text      string
	Start     int
	End       int
	StartTime time.Duration
	EndTime   time.Duration
}

// ChunkResult is the engine output for one chunk.
type ChunkResult struct {
	Seq            int            `json:"seq"`
	Summary        string         `json:"summary"`
	Tasks          []TaskItem     `json:"tasks"`
	Reminders      []ReminderItem `json:"reminders"`
	Titles         []TitleItem    `json:"titles"`
	ContentType    ContentType    `json:"content_type"`
	Confidence     float64        `json:"confidence"`
	ProcessingTime time.Duration  `json:"processing_time"`
}

// Diagnostics surfaces run counters for logging and testing. Not part of
// the functional contract.
type Diagnostics struct {
	Chunks        int     `json:"chunks"`
	SkippedChunks int     `json:"skipped_chunks"`
	CacheHit      bool    `json:"cache_hit"`
	Confidence    float64 `json:"confidence"`
}

// Digest is the final structured output for one transcript.
type Digest struct {
	Summary     string         `json:"summary"`
	Tasks       []TaskItem     `json:"tasks"`
	Reminders   []ReminderItem `json:"reminders"`
	Titles      []TitleItem    `json:"titles"`
	ContentType ContentType    `json:"content_type"`
	Diagnostics Diagnostics    `json:"diagnostics"`
}
