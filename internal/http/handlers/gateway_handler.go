// Gateway HTTP handlers.
//
// This file exposes the browser-facing endpoints:
//   - POST /search           (job offers found by the model)
//   - POST /analyze          (model assessment of one offer)
//   - POST /suggestions      (careers matching a RIASEC profile)
//   - POST /create-checkout  (hosted payment page)
//   - GET  /health           (liveness)
//
// Handlers are transport-thin: decode the body, delegate to the Gateway
// service, and translate its result or error into the response shape.
package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/jobseed-gateway/internal/domain"
	"github.com/tbourn/jobseed-gateway/internal/http/middleware"
)

// GatewayService is the application service behind the handlers.
// *services.Gateway satisfies it.
type GatewayService interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error)
	Analyze(ctx context.Context, req domain.AnalyzeRequest) (domain.Outcome[domain.AnalysisResult], error)
	Suggestions(ctx context.Context, req domain.SuggestionsRequest) (domain.Outcome[[]string], error)
	Checkout(ctx context.Context, req domain.CheckoutRequest, idempotencyKey string) (domain.CheckoutResult, error)
}

// Handlers holds the dependencies shared by the gateway endpoints.
type Handlers struct {
	svc    GatewayService
	worker string
}

// New constructs a Handlers bound to svc. worker is reported by /health.
func New(svc GatewayService, worker string) *Handlers {
	return &Handlers{svc: svc, worker: worker}
}

// Search godoc
// @ID          search
// @Summary     Search job offers
// @Description Asks the language model for current job offers matching the query.
// @Description Offers are passed through exactly as the model produced them.
// @Tags        Gateway
// @Accept      json
// @Produce     json
// @Param       body  body      domain.SearchRequest         true  "Search parameters"
// @Success     200   {object}  domain.SearchResponse
// @Header      200   {string}  X-Upstream-Outcome           "ok"
// @Failure     400   {object}  handlers.ErrorResponse       "Missing query or malformed body"
// @Failure     429   {object}  handlers.ErrorResponse       "Rate limited"
// @Failure     500   {object}  handlers.ErrorResponse       "Missing credential"
// @Failure     502   {object}  handlers.ParseErrorResponse  "Model output not decodable"
// @Failure     504   {object}  handlers.ErrorResponse       "Upstream timeout"
// @Router      /search [post]
func (h *Handlers) Search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	res, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		if isParseError(err) {
			outcome(c, domain.OutcomeDegraded)
		}
		failErr(c, err)
		return
	}
	outcome(c, domain.OutcomeOK)
	ok(c, http.StatusOK, res)
}

// Analyze godoc
// @ID          analyze
// @Summary     Analyze a job offer
// @Description Asks the language model to assess the offer at the given URL.
// @Description Undecodable model output still answers 200 with summary "Erreur analyse"
// @Description and the raw text as insights; X-Upstream-Outcome is then "degraded".
// @Tags        Gateway
// @Accept      json
// @Produce     json
// @Param       body  body      domain.AnalyzeRequest   true  "Offer URL"
// @Success     200   {object}  domain.AnalysisResult
// @Header      200   {string}  X-Upstream-Outcome      "ok or degraded"
// @Failure     400   {object}  handlers.ErrorResponse  "URL missing"
// @Failure     500   {object}  handlers.ErrorResponse  "Missing credential"
// @Failure     502   {object}  handlers.ErrorResponse  "Upstream error"
// @Failure     504   {object}  handlers.ErrorResponse  "Upstream timeout"
// @Router      /analyze [post]
func (h *Handlers) Analyze(c *gin.Context) {
	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	out, err := h.svc.Analyze(c.Request.Context(), req)
	if err != nil {
		failErr(c, err)
		return
	}
	outcome(c, out.Kind)
	ok(c, http.StatusOK, out.Value)
}

// Suggestions godoc
// @ID          suggestions
// @Summary     Suggest careers
// @Description Asks the language model for careers matching testResults.riasec.result.code
// @Description ("Inconnu" when absent). Undecodable output answers ["Erreur suggestion"].
// @Tags        Gateway
// @Accept      json
// @Produce     json
// @Param       body  body      domain.SuggestionsRequest  true  "Psychometric test results"
// @Success     200   {array}   string
// @Header      200   {string}  X-Upstream-Outcome         "ok or degraded"
// @Failure     400   {object}  handlers.ErrorResponse     "Malformed body"
// @Failure     500   {object}  handlers.ErrorResponse     "Missing credential"
// @Failure     502   {object}  handlers.ErrorResponse     "Upstream error"
// @Failure     504   {object}  handlers.ErrorResponse     "Upstream timeout"
// @Router      /suggestions [post]
func (h *Handlers) Suggestions(c *gin.Context) {
	var req domain.SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	out, err := h.svc.Suggestions(c.Request.Context(), req)
	if err != nil {
		failErr(c, err)
		return
	}
	outcome(c, out.Kind)
	ok(c, http.StatusOK, out.Value)
}

// CreateCheckout godoc
// @ID          createCheckout
// @Summary     Create a checkout session
// @Description Creates a hosted card-payment session for one unit of the price and
// @Description returns the page to redirect to. Provider errors are relayed verbatim.
// @Tags        Payments
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header    string                   false "Forwarded to the payment provider, scoped to the caller"
// @Param       body             body      domain.CheckoutRequest   true  "Checkout parameters"
// @Success     200              {object}  domain.CheckoutResult
// @Failure     400              {object}  handlers.ErrorResponse   "Missing parameter"
// @Failure     500              {object}  handlers.ErrorResponse   "Missing credential or provider error"
// @Failure     504              {object}  handlers.ErrorResponse   "Upstream timeout"
// @Router      /create-checkout [post]
func (h *Handlers) CreateCheckout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	res, err := h.svc.Checkout(c.Request.Context(), req, scopedIdempotencyKey(c.ClientIP(), key))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// scopedIdempotencyKey binds a client-chosen key to the caller's address.
// The provider scopes keys per account, so unscoped keys would let two
// clients sending the same key share one session.
func scopedIdempotencyKey(clientIP, key string) string {
	if key == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(clientIP + "\x00" + key))
	return hex.EncodeToString(sum[:])
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Tags        Ops
// @Produce     json
// @Success     200  {object}  domain.Health
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, domain.Health{Status: "ok", Worker: h.worker})
}
