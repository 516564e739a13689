package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
)

// Recovery returns a gin middleware that recovers from panics, logs the panic
// value with a stack trace, and writes an error response. Requests that accept
// HTML get the errors/500.html page; everything else gets the API error shape:
//
//	{"errorMessage": "internal server error", "status": 500}
//
// Panics caused by the client going away (broken pipe, connection reset) are
// logged without a stack and no response is written.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			if isClientGone(r) {
				logger.WarnContext(c.Request.Context(), "client aborted request",
					slog.Any("panic", r),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
				)
				c.Abort()
				return
			}

			logger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("panic", r),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("request_id", GetRequestID(c)),
				slog.String("stack", string(debug.Stack())),
			)

			c.Abort()
			if acceptsHTML(c) {
				renderErrorPage(c)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"errorMessage": "internal server error",
				"status":       http.StatusInternalServerError,
			})
		}()
		c.Next()
	}
}

// isClientGone reports whether a panic value is a write error against a dead
// connection, the one panic a handler cannot usefully answer.
func isClientGone(r any) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if errors.As(opErr.Err, &sysErr) {
		return errors.Is(sysErr.Err, syscall.EPIPE) || errors.Is(sysErr.Err, syscall.ECONNRESET)
	}
	return false
}

// renderErrorPage renders errors/500.html, falling back to plain text when no
// HTML renderer is configured.
func renderErrorPage(c *gin.Context) {
	defer func() {
		if recover() != nil {
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("500 Internal Server Error"))
		}
	}()
	c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{
		"Message": "Something went wrong on our side.",
	})
}

func acceptsHTML(c *gin.Context) bool {
	return strings.Contains(strings.ToLower(c.GetHeader("Accept")), "text/html")
}
