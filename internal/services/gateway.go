package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbourn/jobseed-gateway/internal/domain"
	"github.com/tbourn/jobseed-gateway/internal/llm"
	"github.com/tbourn/jobseed-gateway/internal/observability"
	"github.com/tbourn/jobseed-gateway/internal/payments"
)

// Gateway runs the four upstream-backed operations. A nil LLM or Payments
// means the credential is absent; the matching operations then fail with
// ErrConfiguration before any network call.
type Gateway struct {
	LLM      llm.Completer
	Payments payments.CheckoutProvider

	// Timeout bounds each outbound call. Zero leaves only the request context.
	Timeout time.Duration
}

// NewGateway constructs a Gateway.
func NewGateway(c llm.Completer, p payments.CheckoutProvider, timeout time.Duration) *Gateway {
	return &Gateway{LLM: c, Payments: p, Timeout: timeout}
}

// Search asks the model for job offers. Output that is not a JSON array of
// objects yields a *ParseError carrying the raw text.
func (g *Gateway) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error) {
	req.Query = normalizeParam(req.Query)
	req.Location = normalizeParam(req.Location)
	req.Type = normalizeParam(req.Type)
	if req.Query == "" {
		return domain.SearchResponse{}, &ValidationError{Field: "query", Message: "Query missing"}
	}

	out, err := searchOp.Run(ctx, g.LLM, g.Timeout, req)
	if err != nil {
		return domain.SearchResponse{}, err
	}
	if out.IsDegraded() {
		return domain.SearchResponse{}, &ParseError{Raw: out.Raw, Err: out.Cause}
	}
	return domain.SearchResponse{Jobs: out.Value}, nil
}

// Analyze asks the model to assess one job offer. Undecodable output yields
// a Degraded outcome whose Value is the failure result with the raw text as
// insights.
func (g *Gateway) Analyze(ctx context.Context, req domain.AnalyzeRequest) (domain.Outcome[domain.AnalysisResult], error) {
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return domain.Outcome[domain.AnalysisResult]{}, &ValidationError{Field: "url", Message: "URL missing"}
	}

	out, err := analyzeOp.Run(ctx, g.LLM, g.Timeout, req)
	if err != nil {
		return out, err
	}
	if out.IsDegraded() {
		out.Value = domain.AnalysisResult{
			Summary:  analysisFailureSummary,
			Insights: out.Raw,
			Pros:     []string{},
			Cons:     []string{},
		}
	}
	return out, nil
}

// Suggestions asks the model for careers matching the RIASEC code found in
// the test results. Undecodable output yields a Degraded outcome with a
// single placeholder suggestion.
func (g *Gateway) Suggestions(ctx context.Context, req domain.SuggestionsRequest) (domain.Outcome[[]string], error) {
	code := normalizeParam(req.RIASECCode())

	out, err := suggestionsOp.Run(ctx, g.LLM, g.Timeout, code)
	if err != nil {
		return out, err
	}
	if out.IsDegraded() {
		out.Value = []string{suggestionFailure}
	}
	return out, nil
}

// Checkout creates a hosted checkout session for one unit of the price.
// idempotencyKey is optional and forwarded to the provider.
func (g *Gateway) Checkout(ctx context.Context, req domain.CheckoutRequest, idempotencyKey string) (domain.CheckoutResult, error) {
	params, err := checkoutParams(req, idempotencyKey)
	if err != nil {
		return domain.CheckoutResult{}, err
	}
	if g.Payments == nil {
		return domain.CheckoutResult{}, &ConfigError{Message: "Stripe Config Missing"}
	}

	ctx, span := observability.StartUpstreamSpan(ctx, tracerName, UpstreamPayments, "checkout")
	span.SetAttributes(attribute.String("checkout.mode", params.Mode))
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	start := time.Now()
	sess, err := g.Payments.CreateSession(ctx, params)
	if err != nil {
		err = classifyPaymentsError(err)
		label := outcomeError
		if errors.Is(err, ErrUpstreamTimeout) {
			label = outcomeTimeout
		}
		observeUpstream(UpstreamPayments, "checkout", label, start)
		observability.EndSpan(span, label, err)
		log.Ctx(ctx).Debug().
			Str("operation", "checkout").
			Dur("latency", time.Since(start)).
			Str("outcome", label).
			Err(err).
			Msg("upstream call failed")
		return domain.CheckoutResult{}, err
	}

	observeUpstream(UpstreamPayments, "checkout", domain.OutcomeOK.String(), start)
	observability.EndSpan(span, domain.OutcomeOK.String(), nil)
	log.Ctx(ctx).Debug().
		Str("operation", "checkout").
		Str("session_id", sess.ID).
		Dur("latency", time.Since(start)).
		Msg("upstream call")
	return domain.CheckoutResult{URL: sess.URL}, nil
}

func checkoutParams(req domain.CheckoutRequest, idempotencyKey string) (payments.SessionParams, error) {
	p := payments.SessionParams{
		PriceID:        strings.TrimSpace(req.PriceID),
		SuccessURL:     strings.TrimSpace(req.SuccessURL),
		CancelURL:      strings.TrimSpace(req.CancelURL),
		Mode:           strings.ToLower(strings.TrimSpace(req.Mode)),
		IdempotencyKey: idempotencyKey,
	}
	switch {
	case p.PriceID == "":
		return p, &ValidationError{Field: "priceId", Message: "priceId missing"}
	case p.SuccessURL == "":
		return p, &ValidationError{Field: "successUrl", Message: "successUrl missing"}
	case p.CancelURL == "":
		return p, &ValidationError{Field: "cancelUrl", Message: "cancelUrl missing"}
	}
	if p.Mode == "" {
		p.Mode = domain.DefaultCheckoutMode
	}
	switch p.Mode {
	case "payment", "subscription", "setup":
	default:
		return p, &ValidationError{Field: "mode", Message: "mode must be one of: payment, subscription, setup"}
	}
	return p, nil
}

func classifyPaymentsError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var pe *payments.ProviderError
	if errors.As(err, &pe) {
		return &UpstreamError{Upstream: UpstreamPayments, Message: pe.Message, Err: err}
	}
	return &UpstreamError{Upstream: UpstreamPayments, Message: err.Error(), Err: err}
}
