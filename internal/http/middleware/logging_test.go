package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)
	return &buf
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/rid", func(c *gin.Context) {
		if v, ok := c.Get(requestIDKey); !ok || v == "" {
			t.Fatalf("requestID not set in context")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rid", nil))
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated %s header", requestIDHeader)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(strings.ToLower(requestIDHeader), "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestRecovery_PanicMessageInErrorBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID())
	r.Use(RedactingLogger(RedactOptions{}))
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	r.GET("/panic-err", func(c *gin.Context) { panic(errors.New("nil map write")) })

	for path, want := range map[string]string{"/panic": "kaboom", "/panic-err": "nil map write"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid json body: %v", path, err)
		}
		if body["error"] != want || len(body) != 1 {
			t.Fatalf("%s: unexpected body: %v", path, body)
		}
		if w.Header().Get(errorCodeHeader) != "internal_error" {
			t.Fatalf("%s: missing error code header", path)
		}
	}
	out := buf.String()
	if !strings.Contains(out, "panic recovered") || !strings.Contains(out, `"request_id"`) {
		t.Fatalf("expected panic log with request id, got:\n%s", out)
	}
}

func TestRecovery_PanicAfterWrite_NoJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic-after-write", func(c *gin.Context) {
		c.String(http.StatusOK, "partial-body")
		panic("late kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic-after-write", nil))

	if strings.Contains(w.Body.String(), "late kaboom") {
		t.Fatalf("expected no JSON error body after write; got %q", w.Body.String())
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("expected panic log, got:\n%s", buf.String())
	}
}

func TestLoggerFrom_FallbackAndRequestScoped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	buf1 := captureLogger(t)
	r1 := gin.New()
	r1.GET("/use", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("custom")
		c.Status(http.StatusOK)
	})
	r1.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/use", nil))
	if !strings.Contains(buf1.String(), `"message":"custom"`) || strings.Contains(buf1.String(), `"request_id"`) {
		t.Fatalf("unexpected fallback log: %s", buf1.String())
	}

	buf2 := captureLogger(t)
	r2 := gin.New()
	r2.Use(RequestID())
	r2.Use(RedactingLogger(RedactOptions{}))
	r2.GET("/use", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("from-gin")
		// Services only see the request context.
		log.Ctx(c.Request.Context()).Info().Msg("from-ctx")
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/use", nil)
	req.Header.Set(requestIDHeader, "rid-42")
	r2.ServeHTTP(httptest.NewRecorder(), req)

	for _, line := range strings.Split(strings.TrimSpace(buf2.String()), "\n") {
		if strings.Contains(line, "from-") && !strings.Contains(line, `"request_id":"rid-42"`) {
			t.Fatalf("request-scoped log lacks request_id: %s", line)
		}
	}
	if !strings.Contains(buf2.String(), "from-gin") || !strings.Contains(buf2.String(), "from-ctx") {
		t.Fatalf("expected both scoped logs, got %s", buf2.String())
	}
}

func TestHelpers_asString_truncate_panicMessage(t *testing.T) {
	if asString("x") != "x" || asString(123) != "" {
		t.Fatalf("asString failed")
	}
	if truncate("hello", 10) != "hello" || truncate("abcdefgh", 5) != "abcde…" || truncate("abc", 0) != "abc" {
		t.Fatalf("truncate failed")
	}
	if panicMessage(42) != "42" || panicMessage(errors.New("e")) != "e" {
		t.Fatalf("panicMessage failed")
	}
}
