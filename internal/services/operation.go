package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/jobseed-gateway/internal/domain"
	"github.com/tbourn/jobseed-gateway/internal/llm"
	"github.com/tbourn/jobseed-gateway/internal/observability"
)

const tracerName = "services/Gateway"

// Operation is one model-backed call: a fixed system instruction, a user
// instruction built from the input, a sampling temperature and a strict
// decoder for the expected JSON shape. Fallback policy is left to callers.
type Operation[In, Out any] struct {
	Name        string
	System      string
	Temperature float64
	User        func(In) string
	Decode      func(raw string) (Out, error)
}

// Run sends the prompt once, strips code fences from the answer and decodes
// it. Undecodable output is a Degraded outcome, not an error. Errors are
// returned only for configuration, transport and deadline failures.
func (op Operation[In, Out]) Run(ctx context.Context, c llm.Completer, timeout time.Duration, in In) (domain.Outcome[Out], error) {
	var zero domain.Outcome[Out]
	if c == nil {
		return zero, &ConfigError{Message: "Missing API Key"}
	}

	prompt := llm.Prompt{System: op.System, User: op.User(in), Temperature: op.Temperature}

	ctx, span := observability.StartUpstreamSpan(ctx, tracerName, c.Provider(), op.Name)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.Complete(ctx, prompt)
	if err != nil {
		err = classifyLLMError(err)
		label := outcomeError
		if errors.Is(err, ErrUpstreamTimeout) {
			label = outcomeTimeout
		}
		observeUpstream(UpstreamLLM, op.Name, label, start)
		observability.EndSpan(span, label, err)
		log.Ctx(ctx).Debug().
			Str("operation", op.Name).
			Str("provider", c.Provider()).
			Dur("latency", time.Since(start)).
			Str("outcome", label).
			Err(err).
			Msg("upstream call failed")
		return zero, err
	}

	raw := llm.StripFences(text)
	out := decodeOutcome(raw, op.Decode)

	observeUpstream(UpstreamLLM, op.Name, out.Kind.String(), start)
	observability.EndSpan(span, out.Kind.String(), nil)
	log.Ctx(ctx).Debug().
		Str("operation", op.Name).
		Str("provider", c.Provider()).
		Dur("latency", time.Since(start)).
		Str("outcome", out.Kind.String()).
		Msg("upstream call")
	return out, nil
}

func decodeOutcome[Out any](raw string, decode func(string) (Out, error)) domain.Outcome[Out] {
	if raw == "" {
		return domain.Degraded[Out](raw, errEmptyAnswer)
	}
	v, err := decode(raw)
	if err != nil {
		return domain.Degraded[Out](raw, err)
	}
	return domain.OK(v)
}

var errEmptyAnswer = errors.New("empty model answer")

func classifyLLMError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &UpstreamError{Upstream: UpstreamLLM, Message: err.Error(), Err: err}
}
