package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// backoff schedule for provider-side 429s. Each retry multiplies the delay;
// past maxBackoff the call gives up.
const (
	initialBackoff = 500 * time.Millisecond
	backoffFactor  = 5
	maxBackoff     = 10 * time.Second
)

// OpenAI speaks the OpenAI-compatible chat-completions protocol, which covers
// DeepSeek and most self-hosted gateways as well.
type OpenAI struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewOpenAI(apiKey, baseURL, model string, logger zerolog.Logger) *OpenAI {
	return &OpenAI{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{},
		logger:     logger.With().Str("component", "ai_openai").Logger(),
	}
}

func (o *OpenAI) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int32         `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete implements Provider.
func (o *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	if o.apiKey == "" {
		return "", ErrMissingCredential
	}

	body, err := json.Marshal(chatRequest{
		Model:       o.model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", err
	}

	return o.invoke(ctx, body, 0)
}

func (o *OpenAI) invoke(ctx context.Context, body []byte, backoff time.Duration) (string, error) {
	if backoff > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		if backoff == 0 {
			backoff = initialBackoff
		}
		backoff *= backoffFactor
		if backoff > maxBackoff {
			return "", fmt.Errorf("provider rate limited: max retries exceeded")
		}
		o.logger.Warn().Dur("backoff", backoff).Msg("provider returned 429, backing off")
		return o.invoke(ctx, body, backoff)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode provider payload: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}

	o.logger.Debug().Int("total_tokens", parsed.Usage.TotalTokens).Msg("completion received")
	return parsed.Choices[0].Message.Content, nil
}
