// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by every endpoint. Error
// bodies keep the shape the browser client already understands:
//
//	HTTP/1.1 400 Bad Request
//	X-Error-Code: validation_error
//	{ "error": "URL missing" }
//
// The stable machine-readable code travels in the X-Error-Code header so the
// body stays a single "error" field (plus "raw" for model parsing failures).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/jobseed-gateway/internal/domain"
	"github.com/tbourn/jobseed-gateway/internal/http/middleware"
)

// Response headers set by this package.
const (
	HeaderErrorCode       = "X-Error-Code"
	HeaderUpstreamOutcome = "X-Upstream-Outcome"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable message
	Error string `json:"error" example:"URL missing"`
}

// ParseErrorResponse is returned when the model's answer to a search could
// not be decoded. Raw is the fence-stripped model text.
type ParseErrorResponse struct {
	Error string `json:"error" example:"AI Parsing Error"`
	Raw   string `json:"raw" example:"Désolé, je n'ai trouvé aucune offre."`
}

// fail aborts the request with an error envelope and logs server-side errors
// with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	logServerError(c, status, code, msg)
	c.Header(HeaderErrorCode, code)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// failParse aborts with 502 and the undecodable model text.
func failParse(c *gin.Context, raw string) {
	logServerError(c, http.StatusBadGateway, ErrCodeUpstreamParse, "AI Parsing Error")
	c.Header(HeaderErrorCode, ErrCodeUpstreamParse)
	c.AbortWithStatusJSON(http.StatusBadGateway, ParseErrorResponse{Error: "AI Parsing Error", Raw: raw})
}

func logServerError(c *gin.Context, status int, code, msg string) {
	if status < http.StatusInternalServerError {
		return
	}
	lg := middleware.LoggerFrom(c)
	lg.Error().
		Int("status", status).
		Str("code", code).
		Str("message", msg).
		Msg("api error")
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// outcome labels a model-backed response as ok or degraded.
func outcome(c *gin.Context, k domain.OutcomeKind) {
	c.Header(HeaderUpstreamOutcome, k.String())
}
