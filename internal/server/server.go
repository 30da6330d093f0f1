// Package server provides HTTP and WebSocket handlers
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/orchestrator"
	"github.com/GriffinCanCode/transcript-digest/internal/trace"
)

// Message types.
type Message struct {
	Type string `json:"type"`
}

// DigestRequest is the WebSocket digest message. Callers may carry a
// trace_id alongside; it is read straight off the raw message by
// trace.ExtractFromJSON.
type DigestRequest struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ProgressMessage struct {
	Type  string `json:"type"`
	Seq   int    `json:"seq"`
	Total int    `json:"total"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

type DigestMessage struct {
	Type   string        `json:"type"`
	Digest digest.Digest `json:"digest"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// rateLimiter tracks message timestamps using a sliding window.
type rateLimiter struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// allow checks if a message is allowed and records the timestamp if so.
func (r *rateLimiter) allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-RateLimitWindow)

	// Prune old timestamps
	valid := r.timestamps[:0]
	for _, t := range r.timestamps {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.timestamps = valid

	if len(r.timestamps) >= RateLimitMessages {
		return false
	}

	r.timestamps = append(r.timestamps, now)
	return true
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	orch       *orchestrator.Orchestrator
	mu         sync.RWMutex
	rateLimits map[*websocket.Conn]*rateLimiter
}

// New creates a new server.
func New(orch *orchestrator.Orchestrator) *Server {
	return &Server{
		orch:       orch,
		rateLimits: make(map[*websocket.Conn]*rateLimiter),
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint: digest runs with streamed per-chunk progress
	mux.HandleFunc("/ws", s.handleWebSocket)

	// REST API
	mux.HandleFunc("POST /api/digest", s.handleDigest)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.Handle("GET /metrics", promhttp.Handler())

	// Apply middleware: trace -> CORS
	return corsMiddleware(trace.Middleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "handle_digest")
	defer span.End()
	log := trace.Logger(ctx)

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := s.orch.Process(ctx, req.Text)
	if err != nil {
		span.SetAttr("error", err.Error())
		writeError(w, statusFor(err), err.Error())
		return
	}

	preview := d.Summary
	if len(preview) > SummaryPreviewLimit {
		preview = preview[:SummaryPreviewLimit] + "..."
	}
	log.Info("digest complete",
		"content_type", d.ContentType,
		"chunks", d.Diagnostics.Chunks,
		"cache_hit", d.Diagnostics.CacheHit,
		"summary", preview)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(d)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("websocket accept error", "error", err)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	s.mu.Lock()
	s.rateLimits[conn] = &rateLimiter{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.rateLimits, conn)
		s.mu.Unlock()
	}()

	// Get trace context from HTTP upgrade request
	baseCtx := r.Context()
	log := trace.Logger(baseCtx)
	log.Info("websocket connected", "remote", r.RemoteAddr)

	for {
		var msg json.RawMessage
		if err := wsjson.Read(baseCtx, conn, &msg); err != nil {
			log.Debug("websocket read error", "error", err)
			return
		}

		// Check rate limit
		s.mu.RLock()
		rl := s.rateLimits[conn]
		s.mu.RUnlock()

		if !rl.allow() {
			log.Warn("rate limit exceeded", "remote", r.RemoteAddr)
			_ = wsjson.Write(baseCtx, conn, ErrorMessage{
				Type:    "error",
				Message: "rate limit exceeded",
			})
			continue
		}

		var base Message
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}

		switch base.Type {
		case "digest":
			var req DigestRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				continue
			}
			// Extract trace_id from message or create new trace context
			ctx := baseCtx
			if tc, ok := trace.ExtractFromJSON(msg); ok {
				ctx = trace.WithContext(ctx, tc)
			} else {
				ctx, _ = trace.EnsureContext(ctx)
			}
			s.handleDigestStream(ctx, conn, req.Text)
		}
	}
}

func (s *Server) handleDigestStream(ctx context.Context, conn *websocket.Conn, text string) {
	ctx, span := trace.StartSpan(ctx, "handle_digest_stream")
	defer span.End()

	log := trace.Logger(ctx)
	log.Info("digest request", "bytes", len(text))

	d, err := s.orch.ProcessWithProgress(ctx, text, func(e orchestrator.Event) {
		msg := ProgressMessage{
			Type:  "progress",
			Seq:   e.Seq,
			Total: e.Total,
			State: string(e.State),
		}
		if e.Err != nil {
			msg.Error = e.Err.Error()
		}
		_ = wsjson.Write(ctx, conn, msg)
	})
	if err != nil {
		span.SetAttr("error", err.Error())
		log.Error("digest error", "error", err)
		_ = wsjson.Write(ctx, conn, ErrorMessage{Type: "error", Message: err.Error()})
		return
	}

	_ = wsjson.Write(ctx, conn, DigestMessage{Type: "digest", Digest: d})
}

// statusFor maps pipeline errors to HTTP status codes. Validation
// failures are the caller's fault; everything else is upstream.
func statusFor(err error) int {
	switch {
	case errors.Is(err, digest.ErrEmptyTranscript),
		errors.Is(err, digest.ErrTranscriptTooLong),
		errors.Is(err, digest.ErrMalformedChunks):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
