// Package services implements the gateway operations: job search, offer
// analysis, career suggestions and payment checkout.
//
// This file centralizes the service-level error taxonomy. Sentinels are
// matched with errors.Is; the typed errors carry the message that reaches
// the client. Mapping to HTTP status codes happens in the handler layer.
package services

import "errors"

// Upstream names used in errors, logs and metrics.
const (
	UpstreamLLM      = "llm"
	UpstreamPayments = "payments"
)

var (
	// ErrConfiguration indicates that the credential of the required upstream
	// is absent. No outbound call was attempted.
	ErrConfiguration = errors.New("upstream credential not configured")

	// ErrValidation indicates a missing or malformed client parameter. No
	// outbound call was attempted.
	ErrValidation = errors.New("invalid request")

	// ErrUpstreamTimeout is returned when the upstream did not answer within
	// the configured deadline.
	ErrUpstreamTimeout = errors.New("upstream timed out")
)

// ConfigError names the missing credential in client-facing terms.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// Is makes ConfigError match ErrConfiguration.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// ValidationError describes the offending parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is makes ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ParseError is returned by Search when the model output is not a JSON array
// of offers. Raw is the fence-stripped text the model produced.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return "AI Parsing Error" }

func (e *ParseError) Unwrap() error { return e.Err }

// UpstreamError is a failure reported by an upstream or its transport.
// For payments, Message is the provider's own text.
type UpstreamError struct {
	Upstream string
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Unwrap() error { return e.Err }
