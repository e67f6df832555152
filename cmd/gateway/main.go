// Command gateway runs the JobSeed HTTP gateway.
//
// @title       JobSeed Gateway API
// @version     1.0
// @description Browser-facing gateway in front of the language-model and payment providers.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/tbourn/jobseed-gateway/internal/config"
	"github.com/tbourn/jobseed-gateway/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("gateway exited")
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "gateway",
		Usage:   "JobSeed browser-facing API gateway",
		Version: sysutil.FirstNonEmpty(version, "dev"),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server until SIGINT/SIGTERM",
				Flags:  []cli.Flag{envFlag()},
				Action: serveAction,
			},
			{
				Name:   "check",
				Usage:  "Validate configuration and report missing credentials",
				Flags:  []cli.Flag{envFlag()},
				Action: checkAction,
			},
		},
	}
}

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to a .env file (ignored when absent)",
		Value: ".env",
	}
}

// loadConfig loads envFile into the process environment, without overriding
// variables already set, then reads the configuration.
func loadConfig(envFile string) (config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return config.Load()
}
