// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger of the gateway. It
// scrubs obvious PII and secrets from request metadata before emitting logs
// and attaches a request-scoped logger for handlers and services.
//
// Design goals:
//   - Never logs request or response bodies (prompts, offers, test results)
//   - Redacts emails, phone numbers, UUIDs and payment-provider API keys
//   - Masks sensitive headers (Authorization, Cookie, Set-Cookie,
//     Idempotency-Key, plus custom)
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-Api-Key"},
//	}))
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders lists extra header names whose values are fully replaced with
// "[REDACTED]" (case-insensitive, merged with the built-in set).
type RedactOptions struct {
	MaskHeaders []string
}

var (
	uuidRE = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	// Stripe-style secret, publishable and restricted keys.
	apiKeyRE = regexp.MustCompile(`\b(?:sk|pk|rk)_(?:live|test)_[A-Za-z0-9]+\b`)
	emailRE  = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits-only phone pattern, e.g. "+41 22 555 1212", "022 555 1212".
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// redact scrubs s. Order matters: keys and UUIDs first, phone last since it
// is the loosest pattern.
func redact(s string) string {
	if s == "" {
		return s
	}
	s = apiKeyRE.ReplaceAllString(s, "[REDACTED:key]")
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	s = phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
	return s
}

// RedactingLogger returns a Gin middleware that logs one structured event
// per request with sensitive values scrubbed, at INFO for success, WARN for
// 4xx and ERROR for 5xx.
//
// Before calling the next handler it attaches a request-scoped logger
// carrying request_id, method and path (see LoggerFrom).
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization":   {},
		"cookie":          {},
		"set-cookie":      {},
		"idempotency-key": {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		safeQuery := redact(truncate(c.Request.URL.RawQuery, maxQueryLogLength))

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = redact(strings.Join(vv, ", "))
		}

		rid, _ := c.Get(requestIDKey)
		reqID := asString(rid)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		l := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		attachLogger(c, &l)

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case status >= 500 || len(c.Errors) > 0:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}

		ev.
			Str("query", safeQuery).
			Str("remote_ip", c.ClientIP()).
			Int64("bytes_in", c.Request.ContentLength).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Str("error_code", c.Writer.Header().Get(errorCodeHeader)).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}

// maxQueryLogLength caps the number of bytes of the raw query string logged.
const maxQueryLogLength = 2048
