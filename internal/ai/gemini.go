package ai

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Gemini calls the Gemini API through the official genai client. The client is
// created lazily on first use so a missing key surfaces per request as a
// configuration error rather than a startup crash.
type Gemini struct {
	apiKey string
	model  string
	logger zerolog.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewGemini(apiKey, model string, logger zerolog.Logger) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		model:  model,
		logger: logger.With().Str("component", "ai_gemini").Logger(),
	}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, ErrMissingCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

// Complete implements Provider.
func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	temperature := req.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: req.MaxTokens,
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini returned nil response")
	}

	text := resp.Text()
	if text == "" {
		g.logger.Warn().Int("candidates", len(resp.Candidates)).Msg("gemini response has no text content")
		return "", fmt.Errorf("no text content in gemini response")
	}
	return text, nil
}
