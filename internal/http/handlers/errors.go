// Package handlers: error codes and the mapping from service errors to
// HTTP status codes.
//
// Codes are lowercase snake_case and returned in the X-Error-Code header.
// Clients are expected to branch on these codes, not on messages.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/jobseed-gateway/internal/services"
)

const (
	ErrCodeValidation    = "validation_error"
	ErrCodeConfiguration = "configuration_error"
	ErrCodeUpstreamParse = "upstream_parse_error"
	ErrCodeUpstream      = "upstream_error"
	ErrCodeTimeout       = "upstream_timeout"
	ErrCodeNotFound      = "not_found"
	ErrCodeTooLarge      = "payload_too_large"
	ErrCodeRateLimited   = "too_many_requests"
	ErrCodeInternal      = "internal_error"
)

// failErr classifies err and writes the matching error response.
//
//	ValidationError      400 validation_error
//	ConfigError          500 configuration_error
//	ParseError           502 upstream_parse_error (+raw)
//	timeout              504 upstream_timeout
//	UpstreamError        500 (payments) / 502 (llm) upstream_error
//	anything else        500 internal_error
func failErr(c *gin.Context, err error) {
	var (
		pe *services.ParseError
		ue *services.UpstreamError
	)
	switch {
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, services.ErrConfiguration):
		fail(c, http.StatusInternalServerError, ErrCodeConfiguration, err.Error())
	case errors.As(err, &pe):
		failParse(c, pe.Raw)
	case errors.Is(err, services.ErrUpstreamTimeout):
		fail(c, http.StatusGatewayTimeout, ErrCodeTimeout, services.ErrUpstreamTimeout.Error())
	case errors.As(err, &ue):
		status := http.StatusBadGateway
		if ue.Upstream == services.UpstreamPayments {
			status = http.StatusInternalServerError
		}
		fail(c, status, ErrCodeUpstream, ue.Message)
	case errors.Is(err, context.Canceled):
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "request canceled")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

func isParseError(err error) bool {
	var pe *services.ParseError
	return errors.As(err, &pe)
}

// failBind reports an unreadable request body.
func failBind(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
		return
	}
	fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid JSON body")
}
