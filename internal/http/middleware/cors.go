// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements CORS for a single known browser origin. Every
// response, including errors and fallbacks, carries the same fixed headers,
// and a preflight (OPTIONS on any path) is answered immediately with an
// empty body, before routing.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSOptions configures CORS.
type CORSOptions struct {
	// AllowedOrigin is echoed verbatim in Access-Control-Allow-Origin.
	AllowedOrigin string
	// AllowMethods defaults to GET, POST, OPTIONS.
	AllowMethods []string
	// AllowHeaders defaults to Content-Type, Authorization.
	AllowHeaders []string
}

// CORS returns a middleware that sets the allow-origin/methods/headers
// triplet and a JSON content type on every response, and short-circuits
// OPTIONS requests with 204 No Content.
func CORS(opt CORSOptions) gin.HandlerFunc {
	methods := opt.AllowMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := opt.AllowHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "Authorization"}
	}
	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(headers, ", ")

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", opt.AllowedOrigin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		h.Set("Content-Type", "application/json")
		c.Next()
	}
}
