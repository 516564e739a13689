package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupLoggerRouter(log *slog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(log))

	r.GET("/products", func(c *gin.Context) {
		c.String(http.StatusOK, "[]")
	})
	r.GET("/missing", func(c *gin.Context) {
		c.String(http.StatusNotFound, "nope")
	})
	r.GET("/broken", func(c *gin.Context) {
		c.Error(errors.New("downstream failure"))
		c.String(http.StatusInternalServerError, "boom")
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func captureLog(t *testing.T, path string) string {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := setupLoggerRouter(log)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return buf.String()
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantLevel string
	}{
		{"success logs info", "/products", "level=INFO"},
		{"client error logs warn", "/missing", "level=WARN"},
		{"server error logs error", "/broken", "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLog(t, tt.path)
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("log = %q, want %s", out, tt.wantLevel)
			}
			if !strings.Contains(out, "path="+tt.path) {
				t.Errorf("log = %q, want path attr", out)
			}
		})
	}
}

func TestLoggerRecordsBytesAndClientIP(t *testing.T) {
	out := captureLog(t, "/products")
	if !strings.Contains(out, "bytes=2") {
		t.Errorf("log = %q, want response size", out)
	}
	if !strings.Contains(out, "client_ip=") {
		t.Errorf("log = %q, want client ip", out)
	}
}

func TestLoggerAppendsHandlerErrors(t *testing.T) {
	out := captureLog(t, "/broken")
	if !strings.Contains(out, "errors=") {
		t.Errorf("log = %q, want aggregated handler errors", out)
	}
}

func TestLoggerSkipsHealthProbes(t *testing.T) {
	out := captureLog(t, "/health")
	if out != "" {
		t.Errorf("healthy probe should not be logged, got %q", out)
	}
}
