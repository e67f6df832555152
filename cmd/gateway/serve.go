package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/tbourn/jobseed-gateway/internal/config"
	httpapi "github.com/tbourn/jobseed-gateway/internal/http"
	"github.com/tbourn/jobseed-gateway/internal/http/middleware"
	"github.com/tbourn/jobseed-gateway/internal/llm"
	"github.com/tbourn/jobseed-gateway/internal/observability"
	"github.com/tbourn/jobseed-gateway/internal/payments"
	"github.com/tbourn/jobseed-gateway/internal/services"
	"github.com/tbourn/jobseed-gateway/internal/sysutil"
)

const shutdownGrace = 10 * time.Second

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("env"))
	if err != nil {
		return err
	}
	sysutil.ConfigureLogging(os.Stdout, cfg.LogLevel, cfg.LogPretty, cfg.WorkerName)
	gin.SetMode(cfg.GinMode)

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version, cfg.WorkerName)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("credentials missing; affected routes will answer 500")
	}

	deps := httpapi.Deps{Gateway: newGateway(ctx, cfg)}
	if cfg.RedisURL != "" {
		rdb, err := middleware.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable; using in-process rate limiter")
		} else {
			defer rdb.Close()
			deps.RateStore = middleware.NewRedisStore(rdb, cfg.RateRPS, cfg.RateBurst)
		}
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Str("llm_provider", cfg.LLM.Provider).
			Msg("gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(sctx)
}

// newGateway wires the upstream clients. A missing or unusable credential
// leaves the corresponding client a nil interface so the affected operations
// answer with a configuration error.
func newGateway(ctx context.Context, cfg config.Config) *services.Gateway {
	var completer llm.Completer
	if c, err := llm.New(ctx, cfg.LLM); err == nil {
		completer = c
	} else if !errors.Is(err, llm.ErrNotConfigured) {
		log.Error().Err(err).Str("provider", cfg.LLM.Provider).Msg("llm client")
	}

	var provider payments.CheckoutProvider
	if cfg.Payments.Configured() {
		httpClient := &http.Client{Timeout: cfg.UpstreamTimeout + 5*time.Second}
		if s, err := payments.NewStripe(cfg.Payments.StripeSecretKey, cfg.Payments.StripeAPIURL, httpClient); err == nil {
			provider = s
		} else {
			log.Error().Err(err).Msg("payments client")
		}
	}

	return services.NewGateway(completer, provider, cfg.UpstreamTimeout)
}
