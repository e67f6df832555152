// Package payments creates hosted checkout sessions with a payment provider.
package payments

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by constructors given an empty secret key.
var ErrNotConfigured = errors.New("payment provider credential not configured")

// SessionParams describes one checkout session. Mode is one of payment,
// subscription or setup.
type SessionParams struct {
	PriceID        string
	SuccessURL     string
	CancelURL      string
	Mode           string
	IdempotencyKey string // optional; forwarded so client retries reuse the session
}

// Session is the provider's answer. URL is where the browser is redirected.
type Session struct {
	ID  string
	URL string
}

// CheckoutProvider creates checkout sessions.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, p SessionParams) (*Session, error)
}

// ProviderError carries a message reported by the provider itself, as
// opposed to a transport failure.
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Err }
