// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file validates the optional Idempotency-Key request header. The
// gateway stores nothing: a valid key is stashed in the Gin context and
// forwarded to the payment provider, which deduplicates session creation
// for client retries.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

const ctxKeyIdemKey = "idem.key"

// defaultKeyPattern is an RFC-7230-like token plus common safe characters.
var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stored by
// IdempotencyValidator. The second return value indicates presence.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 255, the
	// payment provider's own limit.
	MaxLen int
	// Pattern restricts allowed characters; nil uses ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyValidator validates the Idempotency-Key header when present
// and stashes it for handlers. An absent header is a no-op; an invalid one
// is rejected with 400 before any upstream call.
func IdempotencyValidator(opts IdempotencyOptions) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 255
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.Header(errorCodeHeader, "validation_error")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid Idempotency-Key"})
			return
		}
		c.Set(ctxKeyIdemKey, key)
		c.Next()
	}
}
