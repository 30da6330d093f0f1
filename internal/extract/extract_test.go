package extract

import (
	"strings"
	"testing"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
)

func TestTasksConsolidatesStrategies(t *testing.T) {
	e := New(Config{}, nil)

	// Pattern, verb+object, and imperative all fire on this sentence; the
	// candidates share content words so they collapse to one task.
	tasks := e.Tasks("I need to call John about the budget.")
	if len(tasks) != 1 {
		t.Fatalf("Tasks() returned %d items, want 1: %+v", len(tasks), tasks)
	}

	task := tasks[0]
	if task.Category != digest.CategoryCall {
		t.Errorf("Category = %v, want call", task.Category)
	}
	if task.Priority != digest.PriorityMedium {
		t.Errorf("Priority = %v, want medium", task.Priority)
	}
	if task.Text != "I need to call John about the budget" {
		t.Errorf("Text = %q, want longest candidate kept", task.Text)
	}
	if task.Confidence < 0.5 || task.Confidence > 1 {
		t.Errorf("Confidence = %v, want [0.5,1]", task.Confidence)
	}
}

func TestTasksMultipleSentences(t *testing.T) {
	e := New(Config{}, nil)

	text := "I need to call John about the budget. Also, we should buy groceries for the party."
	tasks := e.Tasks(text)
	if len(tasks) != 2 {
		t.Fatalf("Tasks() returned %d items, want 2: %+v", len(tasks), tasks)
	}

	categories := map[digest.Category]bool{}
	for _, task := range tasks {
		categories[task.Category] = true
	}
	if !categories[digest.CategoryCall] || !categories[digest.CategoryPurchase] {
		t.Errorf("categories = %v, want call and purchase", categories)
	}
}

func TestTasksTimeReferenceAndCategories(t *testing.T) {
	e := New(Config{}, nil)

	tasks := e.Tasks("Call Bob tomorrow about the contract. Also need to buy milk.")
	if len(tasks) != 2 {
		t.Fatalf("Tasks() returned %d items, want 2: %+v", len(tasks), tasks)
	}

	byCategory := map[digest.Category]digest.TaskItem{}
	for _, task := range tasks {
		byCategory[task.Category] = task
	}

	call, ok := byCategory[digest.CategoryCall]
	if !ok {
		t.Fatal("no call task extracted")
	}
	if call.TimeRef != "tomorrow" {
		t.Errorf("call TimeRef = %q, want tomorrow", call.TimeRef)
	}
	if !strings.Contains(call.Text, "Bob") || !strings.Contains(call.Text, "contract") {
		t.Errorf("call Text = %q, want Bob and contract kept", call.Text)
	}
	if call.Confidence < 0.6 {
		t.Errorf("call Confidence = %v, want >= 0.6", call.Confidence)
	}

	buy, ok := byCategory[digest.CategoryPurchase]
	if !ok {
		t.Fatal("no purchase task extracted")
	}
	if !strings.Contains(buy.Text, "milk") {
		t.Errorf("purchase Text = %q", buy.Text)
	}
	if buy.Confidence < 0.6 {
		t.Errorf("purchase Confidence = %v, want >= 0.6", buy.Confidence)
	}
}

func TestTasksEmptyText(t *testing.T) {
	e := New(Config{}, nil)
	if tasks := e.Tasks(""); len(tasks) != 0 {
		t.Errorf("Tasks(empty) = %v, want none", tasks)
	}
	if tasks := e.Tasks("The weather was nice."); len(tasks) != 0 {
		t.Errorf("Tasks(no signal) = %v, want none", tasks)
	}
}

func TestTasksConfidenceFloor(t *testing.T) {
	e := New(Config{MinConfidence: 0.99}, nil)
	if tasks := e.Tasks("I need to call John about the budget."); len(tasks) != 0 {
		t.Errorf("Tasks() = %v, want all candidates below floor dropped", tasks)
	}
}

func TestTasksCapped(t *testing.T) {
	e := New(Config{MaxTasks: 2}, nil)

	text := "Call the plumber. Buy some paint. Email the landlord a notice."
	tasks := e.Tasks(text)
	if len(tasks) != 2 {
		t.Errorf("Tasks() returned %d items, want cap of 2", len(tasks))
	}
}

func TestAdjustPriority(t *testing.T) {
	tests := []struct {
		name  string
		lower string
		base  digest.Priority
		want  digest.Priority
	}{
		{"urgent cue forces high", "call the doctor as soon as possible", digest.PriorityMedium, digest.PriorityHigh},
		{"eod forces high", "submit the report by end of day", digest.PriorityMedium, digest.PriorityHigh},
		{"hedge forces low", "maybe buy a new monitor sometime", digest.PriorityMedium, digest.PriorityLow},
		{"urgent beats hedge", "maybe call them, but it is urgent", digest.PriorityLow, digest.PriorityHigh},
		{"no cue keeps base", "call john about the budget", digest.PriorityMedium, digest.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adjustPriority(tt.base, tt.lower); got != tt.want {
				t.Errorf("adjustPriority() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatternStrategyFirstMatchWins(t *testing.T) {
	e := New(Config{}, nil)

	// "schedule a meeting" precedes "call" in the pattern table.
	task, ok := e.patternStrategy("Schedule a meeting to call the vendor", "schedule a meeting to call the vendor")
	if !ok {
		t.Fatal("patternStrategy() did not match")
	}
	if task.Category != digest.CategoryMeeting {
		t.Errorf("Category = %v, want meeting", task.Category)
	}
	if task.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", task.Confidence)
	}
}

func TestVerbObjectStrategy(t *testing.T) {
	e := New(Config{}, nil)

	task, ok := e.verbObjectStrategy("Please review the onboarding docs")
	if !ok {
		t.Fatal("verbObjectStrategy() did not match")
	}
	if task.Category != digest.CategoryResearch {
		t.Errorf("Category = %v, want research", task.Category)
	}
	if task.Text != "Review the onboarding docs" {
		t.Errorf("Text = %q", task.Text)
	}

	// Verb with no object contributes nothing.
	if _, ok := e.verbObjectStrategy("Review."); ok {
		t.Error("verbObjectStrategy() matched a bare verb")
	}
}

func TestImperativeStrategy(t *testing.T) {
	e := New(Config{}, nil)

	task, ok := e.imperativeStrategy("Make sure the invoices are paid", "make sure the invoices are paid")
	if !ok {
		t.Fatal("imperativeStrategy() did not match")
	}
	if task.Confidence != imperativeConfidence {
		t.Errorf("Confidence = %v, want %v", task.Confidence, imperativeConfidence)
	}

	// Marker mid-sentence does not fire.
	if _, ok := e.imperativeStrategy("He said to make sure it works", "he said to make sure it works"); ok {
		t.Error("imperativeStrategy() matched a non-initial marker")
	}
}

func TestContextualStrategy(t *testing.T) {
	e := New(Config{}, nil)

	task, ok := e.contextualStrategy("Action item: review the budget numbers", "action item: review the budget numbers")
	if !ok {
		t.Fatal("contextualStrategy() did not match")
	}
	if task.Priority != digest.PriorityHigh {
		t.Errorf("Priority = %v, want high", task.Priority)
	}
	if task.Text != "Review the budget numbers" {
		t.Errorf("Text = %q, want trigger prefix stripped", task.Text)
	}
}

func TestFormatItemText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  call john about the budget.  ", "Call john about the budget"},
		{"buy milk!!", "Buy milk"},
		{"", ""},
		{"already Capitalized", "Already Capitalized"},
	}

	for _, tt := range tests {
		if got := formatItemText(tt.in); got != tt.want {
			t.Errorf("formatItemText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
