// Package ai abstracts the generative-AI backends used for question
// generation and answer evaluation. Providers are selected by configuration;
// handlers only see the Provider interface.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prepmate/interview-coach/internal/config"
)

// ErrMissingCredential signals the provider API key is not configured. The
// handler layer maps it to a generic configuration error; the variable name is
// never surfaced.
var ErrMissingCredential = errors.New("ai provider credential not configured")

// Request is a single completion request.
type Request struct {
	Prompt      string
	MaxTokens   int32
	Temperature float32
}

// Provider turns a prompt into a raw text completion. Implementations must
// respect ctx cancellation; the caller sets the deadline.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// New selects a provider from configuration.
func New(cfg config.AI, logger zerolog.Logger) (Provider, error) {
	switch cfg.Provider {
	case "gemini", "":
		return NewGemini(cfg.GeminiKey, cfg.GeminiModel, logger), nil
	case "openai":
		return NewOpenAI(cfg.OpenAIKey, cfg.OpenAIURL, cfg.OpenAIModel, logger), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
