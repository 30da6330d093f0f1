// Package gemini implements the summarization engine on the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"google.golang.org/genai"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/engine"
)

// Defaults.
const (
	DefaultModel  = "gemini-2.5-flash"
	DefaultBudget = 16384
)

const processPrompt = `You are a transcript analyst. Analyze the transcript below and respond
with ONLY a JSON object, no prose and no code fences, shaped as:
{"summary": "...",
 "content_type": "meeting" | "personal_journal" | "technical" | "general",
 "confidence": 0.0-1.0,
 "tasks": [{"text": "...", "priority": "high|medium|low",
            "category": "call|email|meeting|purchase|research|travel|health|general",
            "time_ref": "", "confidence": 0.0-1.0}],
 "reminders": [{"text": "...", "urgency": "immediate|today|this_week|later",
                "category": "...", "time_ref": "", "confidence": 0.0-1.0}],
 "titles": [{"text": "...", "category": "...", "confidence": 0.0-1.0}]}

Transcript:
---
%s
---`

const metaPrompt = `The following are partial summaries of consecutive sections of one
conversation. Rewrite them as a single coherent summary that reads as one
document. Respond with the summary text only.

---
%s
---`

// Engine calls Gemini for chunk analysis and meta-summarization. API keys
// rotate on quota errors so one exhausted key does not fail the run.
// Safe for concurrent use; the key index is advanced atomically.
type Engine struct {
	model   string
	apiKeys []string
	budget  int

	current atomic.Int32
}

// New creates a Gemini engine. At least one API key is required.
func New(model string, apiKeys []string, budget int) (*Engine, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini engine: no API keys configured")
	}
	if model == "" {
		model = DefaultModel
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Engine{model: model, apiKeys: apiKeys, budget: budget}, nil
}

// ProcessChunk implements engine.Engine.
func (e *Engine) ProcessChunk(ctx context.Context, text string) (digest.ChunkResult, error) {
	start := time.Now()

	raw, err := e.generate(ctx, fmt.Sprintf(processPrompt, text))
	if err != nil {
		return digest.ChunkResult{}, err
	}

	var result digest.ChunkResult
	if err := json.Unmarshal([]byte(stripFences(raw)), &result); err != nil {
		// A malformed model response is a chunk failure, not a run failure.
		return digest.ChunkResult{}, engine.MarkTransient(fmt.Errorf("decode model response: %w", err))
	}
	result.ProcessingTime = time.Since(start)
	return result, nil
}

// MetaSummarize implements engine.Engine.
func (e *Engine) MetaSummarize(ctx context.Context, combined string) (string, error) {
	out, err := e.generate(ctx, fmt.Sprintf(metaPrompt, combined))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Identity implements engine.Engine.
func (e *Engine) Identity() string {
	return "gemini/" + e.model
}

// TokenBudget implements engine.Engine.
func (e *Engine) TokenBudget() int {
	return e.budget
}

// generate calls the model, rotating API keys on quota errors.
func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(e.apiKeys)
	var lastErr error

	for range attempts {
		key := e.apiKeys[e.current.Load()]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			e.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), nil)
		if err != nil {
			lastErr = err
			if isQuotaError(err) {
				e.rotateKey()
				continue
			}
			return "", engine.MarkTransient(err)
		}

		text := result.Text()
		if strings.TrimSpace(text) == "" {
			return "", engine.Transientf("empty model response")
		}
		return text, nil
	}
	return "", engine.MarkTransient(fmt.Errorf("all API keys exhausted: %w", lastErr))
}

func (e *Engine) rotateKey() {
	for {
		cur := e.current.Load()
		next := (cur + 1) % int32(len(e.apiKeys))
		if e.current.CompareAndSwap(cur, next) {
			return
		}
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(strings.ToLower(msg), "quota") ||
		strings.Contains(strings.ToLower(msg), "resource_exhausted")
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
