package product

import "github.com/gin-gonic/gin"

// Module wires product routes into the router.
type Module struct {
	handler *Handler
}

// NewModule creates a new product Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("product.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers product routes. Reads are public so the storefront
// can browse the catalog; mutations and uploads require authentication.
func (m *Module) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/products", m.handler.List)

	protected.POST("/products", m.handler.Create)
	protected.PUT("/products/:id", m.handler.Update)
	protected.DELETE("/products/:id", m.handler.Delete)
	protected.POST("/products/upload-image", m.handler.UploadImage)
}
