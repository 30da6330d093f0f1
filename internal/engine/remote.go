package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
	"github.com/GriffinCanCode/transcript-digest/internal/resilience"
)

// Remote engine defaults.
const (
	DefaultRemoteTimeout = 30 * time.Second
	DefaultRemoteBudget  = 8192
)

// Remote calls an external generation service over HTTP/JSON. Transport
// errors and 5xx responses are transient; 4xx responses are permanent. A
// circuit breaker fails fast when the service is down.
type Remote struct {
	baseURL string
	client  *http.Client
	breaker *resilience.Breaker
	budget  int
}

// NewRemote creates a remote engine client.
func NewRemote(baseURL string, timeout time.Duration, budget int) *Remote {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	if budget <= 0 {
		budget = DefaultRemoteBudget
	}
	return &Remote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: resilience.NewBreaker(resilience.EngineConfig()),
		budget:  budget,
	}
}

type processRequest struct {
	Text string `json:"text"`
}

type metaRequest struct {
	Summaries string `json:"summaries"`
}

type metaResponse struct {
	Summary string `json:"summary"`
}

// ProcessChunk implements Engine.
func (r *Remote) ProcessChunk(ctx context.Context, text string) (digest.ChunkResult, error) {
	return resilience.ExecuteWithResult(r.breaker, func() (digest.ChunkResult, error) {
		var result digest.ChunkResult
		if err := r.post(ctx, "/v1/process", processRequest{Text: text}, &result); err != nil {
			return digest.ChunkResult{}, err
		}
		return result, nil
	})
}

// MetaSummarize implements Engine.
func (r *Remote) MetaSummarize(ctx context.Context, combined string) (string, error) {
	return resilience.ExecuteWithResult(r.breaker, func() (string, error) {
		var resp metaResponse
		if err := r.post(ctx, "/v1/meta-summary", metaRequest{Summaries: combined}, &resp); err != nil {
			return "", err
		}
		return resp.Summary, nil
	})
}

// Identity implements Engine; distinct endpoints are distinct engines for
// cache fingerprinting.
func (r *Remote) Identity() string {
	return "remote/" + r.baseURL
}

// TokenBudget implements Engine.
func (r *Remote) TokenBudget() int {
	return r.budget
}

func (r *Remote) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return MarkTransient(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Transientf("engine service %s: %d", path, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine service %s: %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// Structural parse failures propagate as chunk failures.
		return MarkTransient(err)
	}
	return nil
}
