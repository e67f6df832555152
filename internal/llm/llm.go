// Package llm adapts language-model completion APIs to the single call shape
// the gateway needs: one system instruction, one user instruction, one
// temperature, one text answer. Nothing here retries or streams.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tbourn/jobseed-gateway/internal/config"
)

// ErrNotConfigured is returned by New when the selected provider has no key.
var ErrNotConfigured = errors.New("llm provider credential not configured")

// Prompt is the two-message request sent upstream.
type Prompt struct {
	System      string
	User        string
	Temperature float64
}

// Completer returns the model's text answer for a prompt.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
	// Provider names the upstream for logs and metrics.
	Provider() string
}

// APIError is an upstream failure reported by the provider or the transport.
type APIError struct {
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// New builds the Completer selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
	default:
		return NewOpenAICompatible(config.ProviderPerplexity, cfg.PerplexityAPIKey, cfg.PerplexityBaseURL, cfg.PerplexityModel), nil
	}
}
