// Package config provides gateway configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, CORS and security posture, rate limiting, upstream credentials
// and observability settings.
//
// Upstream credentials are carried here and injected into constructors; no
// other package reads the environment. A missing credential is not a load
// error: the affected operation reports a configuration error per request.
package config

import (
	"errors"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported LLM providers.
const (
	ProviderPerplexity = "perplexity"
	ProviderGemini     = "gemini"
)

// CORSConfig defines the single origin allowed to call the gateway.
type CORSConfig struct {
	AllowedOrigin string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// LLMConfig selects and configures the language-model upstream.
type LLMConfig struct {
	Provider string // perplexity|gemini

	PerplexityAPIKey  string
	PerplexityBaseURL string
	PerplexityModel   string

	GeminiAPIKey string
	GeminiModel  string
}

// APIKey returns the credential of the selected provider.
func (l LLMConfig) APIKey() string {
	if l.Provider == ProviderGemini {
		return l.GeminiAPIKey
	}
	return l.PerplexityAPIKey
}

// Configured reports whether the selected provider has a credential.
func (l LLMConfig) Configured() bool { return l.APIKey() != "" }

// PaymentsConfig configures the payment-session upstream.
type PaymentsConfig struct {
	StripeSecretKey string // trimmed on load
	StripeAPIURL    string
}

// Configured reports whether a payment credential is present.
func (p PaymentsConfig) Configured() bool { return p.StripeSecretKey != "" }

// Config holds all configuration values for the gateway.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool
	SwaggerEnabled bool
	GzipEnabled    bool

	// Identity reported by /health
	WorkerName string

	// Rate limiting
	RateRPS   float64
	RateBurst int
	RedisURL  string // empty keeps the limiter in-process

	// TrustedProxies lists the IPs/CIDRs whose X-Forwarded-For is believed
	// when resolving the client address. Empty trusts none.
	TrustedProxies []string

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Upstreams
	LLM             LLMConfig
	Payments        PaymentsConfig
	UpstreamTimeout time.Duration

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 45*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		GzipEnabled:    getbool("GZIP_ENABLED", true),

		WorkerName: getenv("WORKER_NAME", "jobseed-api"),

		RateRPS:   getfloat("RATE_RPS", 2.0),
		RateBurst: getint("RATE_BURST", 5),
		RedisURL:  strings.TrimSpace(getenv("REDIS_URL", "")),

		TrustedProxies: getlist("TRUSTED_PROXIES"),

		CORS: CORSConfig{
			AllowedOrigin: strings.TrimSpace(getenv("CORS_ALLOWED_ORIGIN", "https://www.jobseed.online")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		LLM: LLMConfig{
			Provider:          strings.ToLower(strings.TrimSpace(getenv("LLM_PROVIDER", ProviderPerplexity))),
			PerplexityAPIKey:  strings.TrimSpace(getenv("PERPLEXITY_API_KEY", "")),
			PerplexityBaseURL: getenv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
			PerplexityModel:   getenv("PERPLEXITY_MODEL", "sonar-pro"),
			GeminiAPIKey:      strings.TrimSpace(getenv("GEMINI_API_KEY", "")),
			GeminiModel:       getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Payments: PaymentsConfig{
			StripeSecretKey: strings.TrimSpace(getenv("STRIPE_SECRET_KEY", "")),
			StripeAPIURL:    getenv("STRIPE_API_URL", "https://api.stripe.com"),
		},
		UpstreamTimeout: getdur("UPSTREAM_TIMEOUT", 30*time.Second),

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "jobseed-gateway"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	cfg.LLM.PerplexityBaseURL = strings.TrimRight(strings.TrimSpace(cfg.LLM.PerplexityBaseURL), "/")
	cfg.Payments.StripeAPIURL = strings.TrimRight(strings.TrimSpace(cfg.Payments.StripeAPIURL), "/")

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.WorkerName) == "" {
		return cfg, errors.New("WORKER_NAME must not be empty")
	}
	if cfg.CORS.AllowedOrigin == "" {
		return cfg, errors.New("CORS_ALLOWED_ORIGIN must not be empty")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	for _, p := range cfg.TrustedProxies {
		if !validProxy(p) {
			return cfg, errors.New("TRUSTED_PROXIES must be a comma-separated list of IPs or CIDRs")
		}
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	switch cfg.LLM.Provider {
	case ProviderPerplexity, ProviderGemini:
	default:
		return cfg, errors.New("LLM_PROVIDER must be one of: perplexity, gemini")
	}
	if cfg.LLM.PerplexityBaseURL == "" {
		return cfg, errors.New("PERPLEXITY_BASE_URL must not be empty")
	}
	if cfg.Payments.StripeAPIURL == "" {
		return cfg, errors.New("STRIPE_API_URL must not be empty")
	}
	if cfg.UpstreamTimeout <= 0 {
		return cfg, errors.New("UPSTREAM_TIMEOUT must be > 0")
	}
	// The upstream deadline must fit inside the response write window.
	if cfg.UpstreamTimeout >= cfg.WriteTimeout {
		return cfg, errors.New("UPSTREAM_TIMEOUT must be shorter than WRITE_TIMEOUT")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// MissingCredentials lists the credential variables the current
// configuration needs but does not have. An empty result means every
// operation can reach its upstream.
func (c Config) MissingCredentials() []string {
	var out []string
	if !c.LLM.Configured() {
		if c.LLM.Provider == ProviderGemini {
			out = append(out, "GEMINI_API_KEY")
		} else {
			out = append(out, "PERPLEXITY_API_KEY")
		}
	}
	if !c.Payments.Configured() {
		out = append(out, "STRIPE_SECRET_KEY")
	}
	return out
}

// ---- helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

// getlist splits a comma-separated value, dropping empty items.
func getlist(k string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(k), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func validProxy(p string) bool {
	if strings.Contains(p, "/") {
		_, _, err := net.ParseCIDR(p)
		return err == nil
	}
	return net.ParseIP(p) != nil
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
