package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini completer. baseURL overrides the API endpoint
// when non-empty.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, &APIError{Provider: "gemini", Message: err.Error(), Err: err}
	}
	return &Gemini{client: client, model: model}, nil
}

// Provider implements Completer.
func (g *Gemini) Provider() string { return "gemini" }

// Complete implements Completer.
func (g *Gemini) Complete(ctx context.Context, p Prompt) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       genai.Ptr(float32(p.Temperature)),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", err
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: "gemini", StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
		}
		return "", &APIError{Provider: "gemini", Message: err.Error(), Err: err}
	}
	return resp.Text(), nil
}
