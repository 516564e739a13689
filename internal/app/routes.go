package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"
	"gorm.io/gorm"

	"github.com/simp-lee/storeadmin/internal/middleware"
)

// Module is implemented by each resource module to register its routes.
// The public group has no authentication; the protected group requires a
// valid bearer token.
type Module interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules    []Module
	DB         *gorm.DB
	JWTService jwt.Service
	UploadDir  string
	CSRFSecret string
}

// RegisterRoutes registers all store API routes on the given gin.Engine.
// Routes live at the root of the path space; clients bind bare paths like
// /products and /admin/users. The CSRF double-submit cookie applies to every
// route so that GET /csrf-token primes the cookie and every mutation is
// checked against it.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}
	if deps.JWTService == nil {
		return errors.New("jwt service is required")
	}
	if strings.TrimSpace(deps.CSRFSecret) == "" {
		return errors.New("csrf secret is required")
	}

	r.GET("/health", healthHandler(deps.DB))

	// Uploaded product images.
	if deps.UploadDir != "" {
		r.Static("/uploads", deps.UploadDir)
	}

	csrf := middleware.CSRF(deps.CSRFSecret)

	// Primes the XSRF-TOKEN cookie for clients that have not issued a safe
	// request yet. The token is also returned in the body for convenience.
	r.GET("/csrf-token", csrf, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": middleware.GetCSRFToken(c)})
	})

	public := r.Group("/", csrf)

	protected := r.Group("/", csrf, middleware.RequireAuth(deps.JWTService))

	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(public, protected)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"errorMessage": "not found",
			"status":       http.StatusNotFound,
		})
	})

	return nil
}

// healthHandler returns a handler that pings the database and reports status.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		status := "ok"
		code := http.StatusOK

		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "degraded",
				"components": gin.H{"database": "error"},
			})
			return
		}

		sqlDB, err := db.DB()
		if err != nil {
			dbStatus = "error"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				dbStatus = "error"
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":     status,
			"components": gin.H{"database": dbStatus},
		})
	}
}
