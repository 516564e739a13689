package user

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/middleware"
)

// Module wires user management routes into the router.
type Module struct {
	handler *Handler
}

// NewModule creates a new user Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers user management routes. All of them live under
// /admin and require the ADMIN role.
func (m *Module) RegisterRoutes(public, protected *gin.RouterGroup) {
	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))

	admin.GET("/users", m.handler.List)
	admin.POST("/users", m.handler.Create)
	admin.PUT("/users/:id", m.handler.Update)
	admin.DELETE("/users/:id", m.handler.Delete)
}
