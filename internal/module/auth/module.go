package auth

import "github.com/gin-gonic/gin"

// Module wires authentication routes into the router.
type Module struct {
	handler *Handler
}

// NewModule creates a new auth Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers authentication routes. Login and register are
// public; the profile endpoint requires a token.
func (m *Module) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", m.handler.Login)
	public.POST("/register", m.handler.Register)

	protected.GET("/profile", m.handler.Profile)
}
