// Package client is a Go client for the interview-coach API. The practice
// store uses it to run generation and evaluation against a deployed server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prepmate/interview-coach/internal/interview"
)

const defaultTimeout = 120 * time.Second

// Client calls the two AI-backed endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	RetryAfter int             `json:"retryAfter"`
}

// GenerateQuestions requests a question batch for the given résumé and job
// description.
func (c *Client) GenerateQuestions(ctx context.Context, req interview.GenerateRequest) ([]interview.Question, error) {
	var result interview.GenerateResult
	if err := c.post(ctx, "/v1/generate-questions", req, &result); err != nil {
		return nil, err
	}
	return result.Questions, nil
}

// EvaluateAnswer scores a user answer against the model answer.
func (c *Client) EvaluateAnswer(ctx context.Context, req interview.EvaluateRequest) (interview.Evaluation, error) {
	var result interview.EvaluateResult
	if err := c.post(ctx, "/v1/evaluate-answer", req, &result); err != nil {
		return interview.Evaluation{}, err
	}
	return result.Evaluation, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = env.Error
		}
		if resp.StatusCode == http.StatusTooManyRequests && env.RetryAfter > 0 {
			return fmt.Errorf("%s (retry after %ds)", message, env.RetryAfter)
		}
		return fmt.Errorf("%s", message)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data payload: %w", err)
		}
	}
	return nil
}
