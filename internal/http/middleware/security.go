// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, a hardening middleware that attaches a
// conservative set of HTTP security headers suitable for a JSON API called
// from a single browser origin. It supports HSTS (when traffic is HTTPS
// end-to-end), cache controls and browser feature policies, and exposes the
// gateway's diagnostic headers to browser scripts.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// exposedHeaders are readable by browser scripts across origins.
var exposedHeaders = []string{requestIDHeader, errorCodeHeader, upstreamOutcomeHeader}

// SecurityOptions configures HTTP security headers emitted by SecurityHeaders.
//
// EnableHSTS emits Strict-Transport-Security for HTTPS requests only.
// HSTSMaxAge defaults to 180 days when not positive. NoStore adds
// Cache-Control: no-store. EnablePolicy sends Permissions-Policy and
// X-Permitted-Cross-Domain-Policies.
type SecurityOptions struct {
	EnableHSTS   bool
	HSTSMaxAge   time.Duration
	NoStore      bool
	EnablePolicy bool
}

// SecurityHeaders returns a Gin middleware that adds security headers to
// each response:
//
//	X-Content-Type-Options: nosniff
//	X-Frame-Options: DENY
//	Referrer-Policy: no-referrer
//	Access-Control-Expose-Headers: X-Request-ID, X-Error-Code, X-Upstream-Outcome
//
// plus the optional policy, no-store and HSTS headers described on
// SecurityOptions. Payment is not disabled in Permissions-Policy since the
// client redirects to a hosted checkout page.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		exposeHeaders(h, exposedHeaders...)

		c.Next()
	}
}

// exposeHeaders appends names to Access-Control-Expose-Headers without
// duplicating entries already present.
func exposeHeaders(h http.Header, names ...string) {
	const hdr = "Access-Control-Expose-Headers"
	cur := h.Get(hdr)
	for _, n := range names {
		if strings.Contains(cur, n) {
			continue
		}
		if cur == "" {
			cur = n
		} else {
			cur += ", " + n
		}
	}
	h.Set(hdr, cur)
}

// isHTTPS reports whether the incoming request used HTTPS either directly
// (r.TLS != nil) or via a reverse proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
