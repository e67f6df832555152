package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Stripe creates Checkout Sessions through the Stripe API.
type Stripe struct {
	api *client.API
}

// NewStripe builds a Stripe provider. apiURL overrides the API host
// (https://api.stripe.com when empty); httpClient may be nil.
func NewStripe(secretKey, apiURL string, httpClient *http.Client) (*Stripe, error) {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, ErrNotConfigured
	}
	if apiURL == "" {
		apiURL = stripe.APIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(strings.TrimRight(apiURL, "/")),
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     zerologLeveled{},
	})
	return &Stripe{api: client.New(secretKey, &stripe.Backends{API: backend, Uploads: backend})}, nil
}

// CreateSession implements CheckoutProvider. Sessions always take card
// payment for a single unit of the price.
func (s *Stripe) CreateSession(ctx context.Context, p SessionParams) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(p.PriceID),
			Quantity: stripe.Int64(1),
		}},
		Mode:       stripe.String(p.Mode),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, classify(ctx, err)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("stripe: %w", ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	var se *stripe.Error
	if errors.As(err, &se) {
		msg := se.Msg
		if msg == "" {
			msg = http.StatusText(se.HTTPStatusCode)
		}
		return &ProviderError{StatusCode: se.HTTPStatusCode, Message: msg, Err: err}
	}
	return err
}

// zerologLeveled routes stripe-go's internal logging through zerolog at
// debug level; failures are reported by the caller.
type zerologLeveled struct{}

func (zerologLeveled) Debugf(format string, v ...interface{}) {
	log.Debug().Str("upstream", "stripe").Msgf(format, v...)
}

func (zerologLeveled) Infof(format string, v ...interface{}) {
	log.Debug().Str("upstream", "stripe").Msgf(format, v...)
}

func (zerologLeveled) Warnf(format string, v ...interface{}) {
	log.Debug().Str("upstream", "stripe").Msgf(format, v...)
}

func (zerologLeveled) Errorf(format string, v ...interface{}) {
	log.Debug().Str("upstream", "stripe").Msgf(format, v...)
}
