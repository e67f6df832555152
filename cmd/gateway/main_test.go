package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbourn/jobseed-gateway/internal/config"
)

// clearCredentials makes every credential variable present but empty, which
// also keeps .env files from supplying them.
func clearCredentials(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PERPLEXITY_API_KEY", "GEMINI_API_KEY", "STRIPE_SECRET_KEY", "LLM_PROVIDER", "REDIS_URL"} {
		t.Setenv(k, "")
	}
}

func TestNewGateway_MissingCredentialsLeaveNilClients(t *testing.T) {
	clearCredentials(t)
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	gw := newGateway(context.Background(), cfg)
	if gw.LLM != nil {
		t.Fatalf("expected nil LLM, got %T", gw.LLM)
	}
	if gw.Payments != nil {
		t.Fatalf("expected nil Payments, got %T", gw.Payments)
	}
	if gw.Timeout != cfg.UpstreamTimeout {
		t.Fatalf("timeout = %v", gw.Timeout)
	}
}

func TestNewGateway_WithCredentials(t *testing.T) {
	clearCredentials(t)
	t.Setenv("PERPLEXITY_API_KEY", "pplx-test")
	t.Setenv("STRIPE_SECRET_KEY", " sk_test_123 ")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	gw := newGateway(context.Background(), cfg)
	if gw.LLM == nil || gw.LLM.Provider() != config.ProviderPerplexity {
		t.Fatalf("unexpected LLM %v", gw.LLM)
	}
	if gw.Payments == nil {
		t.Fatalf("expected payments provider")
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	// Registers restoration; the variable itself must be unset for
	// godotenv to apply the file.
	t.Setenv("WORKER_NAME", "")
	os.Unsetenv("WORKER_NAME")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("WORKER_NAME=jobseed-staging\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.WorkerName != "jobseed-staging" {
		t.Fatalf("WorkerName = %q", cfg.WorkerName)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("absent env file must be ignored: %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	clearCredentials(t)
	missing := filepath.Join(t.TempDir(), "none.env")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(context.Background(), []string{"gateway", "check", "--env", missing})
	if err == nil || !strings.Contains(err.Error(), "PERPLEXITY_API_KEY") || !strings.Contains(err.Error(), "STRIPE_SECRET_KEY") {
		t.Fatalf("expected missing credentials error, got %v", err)
	}
	if !strings.Contains(out.String(), "llm provider: perplexity") {
		t.Fatalf("output = %q", out.String())
	}

	t.Setenv("PERPLEXITY_API_KEY", "pplx-test")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	out.Reset()
	app = newApp()
	app.Writer = &out
	if err := app.Run(context.Background(), []string{"gateway", "check", "--env", missing}); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out.String(), "credentials:  ok") {
		t.Fatalf("output = %q", out.String())
	}
}
