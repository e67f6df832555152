package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func serveSecurity(opt SecurityOptions, mutate func(*http.Request), pre ...gin.HandlerFunc) http.Header {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(pre...)
	r.Use(SecurityHeaders(opt))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header()
}

func TestSecurityHeaders_BaselineAndExpose(t *testing.T) {
	h := serveSecurity(SecurityOptions{}, nil)

	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %v", h)
	}
	if got := h.Get("Access-Control-Expose-Headers"); got != "X-Request-ID, X-Error-Code, X-Upstream-Outcome" {
		t.Fatalf("expose = %q", got)
	}
	for _, k := range []string{"Permissions-Policy", "Cache-Control", "Strict-Transport-Security"} {
		if h.Get(k) != "" {
			t.Fatalf("unexpected %s", k)
		}
	}
}

func TestSecurityHeaders_ExposeKeepsExisting(t *testing.T) {
	pre := func(c *gin.Context) {
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
		c.Next()
	}
	h := serveSecurity(SecurityOptions{}, nil, pre)
	if got := h.Get("Access-Control-Expose-Headers"); got != "Content-Length, X-Request-ID, X-Error-Code, X-Upstream-Outcome" {
		t.Fatalf("expose = %q", got)
	}
}

func TestSecurityHeaders_PolicyNoStoreHSTS(t *testing.T) {
	opt := SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour, NoStore: true, EnablePolicy: true}
	h := serveSecurity(opt, func(r *http.Request) { r.TLS = &tls.ConnectionState{} })

	if h.Get("Strict-Transport-Security") != "max-age=3600; includeSubDomains; preload" {
		t.Fatalf("hsts = %q", h.Get("Strict-Transport-Security"))
	}
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("no-store headers missing: %v", h)
	}
	if pp := h.Get("Permissions-Policy"); pp == "" || strings.Contains(pp, "payment") {
		t.Fatalf("permissions policy = %q", pp)
	}
}

func TestSecurityHeaders_HSTSDefaultAgeAndPlainHTTP(t *testing.T) {
	opt := SecurityOptions{EnableHSTS: true}
	h := serveSecurity(opt, func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "HTTPS") })
	if h.Get("Strict-Transport-Security") != "max-age=15552000; includeSubDomains; preload" {
		t.Fatalf("hsts = %q", h.Get("Strict-Transport-Security"))
	}
	h = serveSecurity(opt, nil)
	if h.Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must not be sent over plain HTTP")
	}
}

func Test_isHTTPS(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTTPS(r) {
		t.Fatalf("plain request reported as https")
	}
	r.Header.Set("X-Forwarded-Proto", "https")
	if !isHTTPS(r) {
		t.Fatalf("forwarded https not detected")
	}
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{}
	if !isHTTPS(r) {
		t.Fatalf("tls not detected")
	}
}
