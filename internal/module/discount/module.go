package discount

import "github.com/gin-gonic/gin"

// Module wires discount routes into the router. The singular /discount path
// is part of the public API contract.
type Module struct {
	handler *Handler
}

// NewModule creates a new discount Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("discount.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers discount routes. All of them require authentication.
func (m *Module) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/discount", m.handler.List)
	protected.POST("/discount", m.handler.Create)
	protected.PUT("/discount/:code", m.handler.Update)
	protected.DELETE("/discount/:code", m.handler.Delete)
}
