package engine

import (
	"context"
	"errors"
	"testing"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"marked transient", MarkTransient(errors.New("boom")), true},
		{"transientf", Transientf("upstream %d", 503), true},
		{"cancellation", context.Canceled, false},
		{"wrapped cancellation", MarkTransient(context.Canceled), false},
		{"deadline", context.DeadlineExceeded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMarkTransientPreservesOriginal(t *testing.T) {
	orig := errors.New("connection refused")
	wrapped := MarkTransient(orig)

	if !errors.Is(wrapped, orig) {
		t.Error("MarkTransient lost the original error")
	}
	if !errors.Is(wrapped, ErrTransient) {
		t.Error("MarkTransient did not mark the error")
	}
	if MarkTransient(nil) != nil {
		t.Error("MarkTransient(nil) != nil")
	}
}
