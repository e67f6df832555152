package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/jobseed-gateway/internal/domain"
)

func TestFail_LogsServerErrorsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/bad", func(c *gin.Context) { Fail(c, http.StatusBadRequest, ErrCodeValidation, "nope") })
	r.GET("/boom", func(c *gin.Context) { Fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom") })

	_ = do(r, http.MethodGet, "/bad", "", nil)
	if buf.Len() != 0 {
		t.Fatalf("4xx must not be logged here: %s", buf.String())
	}
	w := do(r, http.MethodGet, "/boom", "", nil)
	if w.Body.String() != `{"error":"kaboom"}` {
		t.Fatalf("body=%s", w.Body)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "kaboom") {
		t.Fatalf("expected error log, got %s", buf.String())
	}
}

func TestOutcomeHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		outcome(c, domain.OutcomeDegraded)
		ok(c, http.StatusOK, []string{})
	})
	w := do(r, http.MethodGet, "/x", "", nil)
	if w.Header().Get(HeaderUpstreamOutcome) != "degraded" || w.Body.String() != "[]" {
		t.Fatalf("headers=%v body=%s", w.Header(), w.Body)
	}
}
