// Package httpapi wires the HTTP transport (Gin) to the gateway service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, rate limiting and idempotency-key validation.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Every browser-facing response, fallbacks included, carries CORS headers
//   - All dependencies injected
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/tbourn/jobseed-gateway/docs"
	"github.com/tbourn/jobseed-gateway/internal/config"
	"github.com/tbourn/jobseed-gateway/internal/http/handlers"
	"github.com/tbourn/jobseed-gateway/internal/http/middleware"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// Deps are the collaborators RegisterRoutes mounts.
type Deps struct {
	// Gateway serves the four business routes.
	Gateway handlers.GatewayService
	// RateStore backs the rate limiter. Nil selects an in-process token
	// bucket sized from the config.
	RateStore middleware.Store
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics (then /metrics and /swagger, which skip the browser layer)
//  7. CORS: answers preflights before routing
//  8. Security headers
//  9. Rate limiter
//  10. Gzip (optional)
//  11. Idempotency-Key validation
//
// Unknown paths and unsupported methods on known paths both fall through to
// a JSON 404.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = false
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	// Without trusted proxies ClientIP is the peer address, so X-Forwarded-For
	// cannot pick a rate-limit bucket.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("invalid trusted proxies; trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-Api-Key", "Stripe-Signature"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(maxBodyBytes))

	// 6) Prometheus metrics and operator endpoints
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 7) CORS for the single browser origin
	r.Use(middleware.CORS(middleware.CORSOptions{
		AllowedOrigin: cfg.CORS.AllowedOrigin,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "Authorization", middleware.HeaderIdempotencyKey},
	}))

	// 8) Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// 9) Per-IP rate limiting, shared across instances when a store is given
	var rl *middleware.RateLimiter
	if deps.RateStore != nil {
		rl = middleware.NewRateLimiterWithStore(deps.RateStore, middleware.KeyByIP())
	} else {
		rl = middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	}
	r.Use(rl.Handler())

	// 10) Response compression
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	// 11) Idempotency-Key shape check (forwarded to the payment provider)
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}))

	// Fallback
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "Route not found")
	})

	h := handlers.New(deps.Gateway, cfg.WorkerName)

	r.GET("/health", h.Health)
	r.POST("/search", h.Search)
	r.POST("/analyze", h.Analyze)
	r.POST("/suggestions", h.Suggestions)
	r.POST("/create-checkout", h.CreateCheckout)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
