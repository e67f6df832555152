package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAICompatible talks to any chat-completions API that follows the OpenAI
// wire format. Perplexity is the default deployment target.
type OpenAICompatible struct {
	client   openai.Client
	model    string
	provider string
}

// NewOpenAICompatible builds a client for baseURL. Extra options (tests pass
// option.WithHTTPClient) are appended after the defaults.
func NewOpenAICompatible(provider, apiKey, baseURL, model string, opts ...option.RequestOption) *OpenAICompatible {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	return &OpenAICompatible{
		client:   openai.NewClient(append(base, opts...)...),
		model:    model,
		provider: provider,
	}
}

// Provider implements Completer.
func (c *OpenAICompatible) Provider() string { return c.provider }

// Complete implements Completer. An answer without choices yields an empty
// string, which callers treat as undecodable output.
func (c *OpenAICompatible) Complete(ctx context.Context, p Prompt) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.User),
		},
		Temperature: openai.Float(p.Temperature),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", c.wrap(err)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *OpenAICompatible) wrap(err error) error {
	// Deadlines and cancellation keep their identity for errors.Is.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return &APIError{Provider: c.provider, StatusCode: apiErr.StatusCode, Message: msg, Err: err}
	}
	return &APIError{Provider: c.provider, Message: err.Error(), Err: err}
}
