package gemini

import (
	"errors"
	"sync"
	"testing"
)

func TestNewRequiresKeys(t *testing.T) {
	if _, err := New("", nil, 0); err == nil {
		t.Error("New() = nil error without API keys")
	}
}

func TestNewDefaults(t *testing.T) {
	e, err := New("", []string{"key"}, 0)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if e.model != DefaultModel {
		t.Errorf("model = %q, want default", e.model)
	}
	if e.TokenBudget() != DefaultBudget {
		t.Errorf("TokenBudget() = %d, want default", e.TokenBudget())
	}
	if e.Identity() != "gemini/"+DefaultModel {
		t.Errorf("Identity() = %q", e.Identity())
	}
}

func TestRotateKeyWraps(t *testing.T) {
	e, err := New("", []string{"a", "b", "c"}, 0)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	for _, want := range []int32{1, 2, 0, 1} {
		e.rotateKey()
		if got := e.current.Load(); got != want {
			t.Fatalf("current = %d, want %d", got, want)
		}
	}
}

func TestRotateKeyConcurrent(t *testing.T) {
	keys := []string{"a", "b", "c"}
	e, err := New("", keys, 0)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	var wg sync.WaitGroup
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				e.rotateKey()
				if idx := e.current.Load(); idx < 0 || int(idx) >= len(keys) {
					t.Errorf("key index %d out of range", idx)
					return
				}
			}
		}()
	}
	wg.Wait()

	// 6000 total rotations is a whole number of cycles through 3 keys, so
	// every advance was counted exactly once.
	if got := e.current.Load(); got != 0 {
		t.Errorf("current = %d after full cycles, want 0", got)
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"status code", errors.New("googleapi: Error 429: rate limited"), true},
		{"quota wording", errors.New("Quota exceeded for requests"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuotaError(tt.err); got != tt.want {
				t.Errorf("isQuotaError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"summary": "x"}`, `{"summary": "x"}`},
		{"json fence", "```json\n{\"summary\": \"x\"}\n```", `{"summary": "x"}`},
		{"plain fence", "```\n{}\n```", "{}"},
		{"surrounding whitespace", "  {}  ", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
