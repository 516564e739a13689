package order

import "github.com/gin-gonic/gin"

// Module wires order routes into the router. Orders have no delete route;
// cancellation is a status update.
type Module struct {
	handler *Handler
}

// NewModule creates a new order Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("order.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers order routes. All of them require authentication.
func (m *Module) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/orders", m.handler.List)
	protected.POST("/orders", m.handler.Create)
	protected.PUT("/orders/:id", m.handler.Update)
}
