package payments

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestNewStripe_RequiresKey(t *testing.T) {
	if _, err := NewStripe("   ", "", nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestStripe_CreateSession_Success(t *testing.T) {
	var calls int32
	var form map[string]string
	var auth, idem, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		idem = r.Header.Get("Idempotency-Key")
		_ = r.ParseForm()
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`)
	}))
	defer srv.Close()

	s, err := NewStripe("  sk_test_123\n", srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewStripe: %v", err)
	}
	sess, err := s.CreateSession(context.Background(), SessionParams{
		PriceID:        "price_1",
		SuccessURL:     "https://www.jobseed.online/ok",
		CancelURL:      "https://www.jobseed.online/cancel",
		Mode:           "payment",
		IdempotencyKey: "idem-1",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.URL != "https://checkout.stripe.com/c/pay/cs_test_1" || sess.ID != "cs_test_1" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if calls != 1 || path != "/v1/checkout/sessions" {
		t.Fatalf("calls=%d path=%q", calls, path)
	}
	if auth != "Bearer sk_test_123" {
		t.Fatalf("key not trimmed: %q", auth)
	}
	if idem != "idem-1" {
		t.Fatalf("idempotency key = %q", idem)
	}
	want := map[string]string{
		"mode":                    "payment",
		"success_url":             "https://www.jobseed.online/ok",
		"cancel_url":              "https://www.jobseed.online/cancel",
		"line_items[0][price]":    "price_1",
		"line_items[0][quantity]": "1",
		"payment_method_types[0]": "card",
	}
	for k, v := range want {
		if form[k] != v {
			t.Fatalf("form[%q] = %q; want %q (form=%v)", k, form[k], v, form)
		}
	}
}

func TestStripe_CreateSession_ProviderError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"No such price: 'price_x'","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	s, _ := NewStripe("sk_test_123", srv.URL, srv.Client())
	_, err := s.CreateSession(context.Background(), SessionParams{
		PriceID: "price_x", SuccessURL: "https://a/ok", CancelURL: "https://a/no", Mode: "payment",
	})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T %v", err, err)
	}
	if pe.Message != "No such price: 'price_x'" || pe.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected provider error: %+v", pe)
	}
	if calls != 1 {
		t.Fatalf("expected one call without retries, got %d", calls)
	}
}

func TestStripe_CreateSession_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	s, _ := NewStripe("sk_test_123", srv.URL, srv.Client())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.CreateSession(ctx, SessionParams{PriceID: "p", SuccessURL: "s", CancelURL: "c", Mode: "payment"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
