// Package server provides HTTP and WebSocket handlers
package server

import "time"

// Server configuration constants
const (
	// Largest accepted request body; anything bigger is rejected before
	// validation runs
	MaxRequestBytes = 4 << 20

	// Per-connection WebSocket rate limiting
	RateLimitMessages = 10          // Max digest requests per connection per window
	RateLimitWindow   = time.Minute // Sliding window duration

	// Summary truncation limit for log lines
	SummaryPreviewLimit = 200
)
