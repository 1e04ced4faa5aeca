// Package generate is the boundary adapter for the external content
// generator that produces candidate grids. The engine only consumes the
// generate/generateWithFeedback contract; prompt design lives upstream.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/playproof/levelengine/internal/domain"
)

// Request asks the generator for a fresh candidate level.
type Request struct {
	GameID     domain.GameID     `json:"gameId"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Intent     string            `json:"intent,omitempty"`
	Hint       string            `json:"hint,omitempty"`
}

// FeedbackRequest asks for a candidate biased away from the previous
// attempt's observed faults.
type FeedbackRequest struct {
	Request
	Issues      []domain.Issue `json:"issues"`
	RawResponse string         `json:"rawResponse"`
}

// Generator is the consumed generation capability.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (*domain.GenerateResult, error)
	GenerateWithFeedback(ctx context.Context, req FeedbackRequest) (*domain.GenerateResult, error)
}

// Client talks to the upstream generator service over HTTP JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a generator client for the given base URL. The timeout
// wraps the whole external call; the core engine itself carries no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Name identifies the generator variant in response metadata.
func (c *Client) Name() string { return "upstream-http" }

// Generate requests a first-attempt candidate.
func (c *Client) Generate(ctx context.Context, req Request) (*domain.GenerateResult, error) {
	return c.post(ctx, "/generate", req)
}

// GenerateWithFeedback requests a candidate with prior-fault feedback.
func (c *Client) GenerateWithFeedback(ctx context.Context, req FeedbackRequest) (*domain.GenerateResult, error) {
	return c.post(ctx, "/generate-feedback", req)
}

func (c *Client) post(ctx context.Context, path string, body any) (*domain.GenerateResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, domain.WrapEngineError(domain.ErrGeneratorResponse.Code, "encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.WrapEngineError(domain.ErrGeneratorUnavailable.Code, "build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, domain.WrapEngineError(domain.ErrGeneratorUnavailable.Code, "call generator", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewEngineError(domain.ErrGeneratorUnavailable.Code,
			fmt.Sprintf("generator returned status %d", resp.StatusCode))
	}

	var result domain.GenerateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, domain.WrapEngineError(domain.ErrGeneratorResponse.Code, "decode response", err)
	}
	return &result, nil
}
