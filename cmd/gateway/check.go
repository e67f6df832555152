package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

func checkAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("env"))
	if err != nil {
		return err
	}
	w := cmd.Root().Writer

	fmt.Fprintf(w, "port:         %s\n", cfg.Port)
	fmt.Fprintf(w, "llm provider: %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "cors origin:  %s\n", cfg.CORS.AllowedOrigin)
	if cfg.RedisURL != "" {
		fmt.Fprintln(w, "rate limit:   redis")
	} else {
		fmt.Fprintln(w, "rate limit:   in-process")
	}

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	fmt.Fprintln(w, "credentials:  ok")
	return nil
}
