package discount

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Handler handles REST API requests for the discount resource.
type Handler struct {
	svc domain.DiscountService
}

// NewHandler creates a new discount Handler.
func NewHandler(svc domain.DiscountService) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /discount.
func (h *Handler) Create(c *gin.Context) {
	var req DiscountRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	discount, err := h.svc.CreateDiscount(c.Request.Context(), domain.DiscountInput{
		Code:     req.Code,
		Type:     req.Type,
		Discount: req.Discount,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, discount)
}

// List handles GET /discount.
func (h *Handler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c, "code")

	result, err := h.svc.ListDiscounts(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.OK(c, result.Items)
}

// Update handles PUT /discount/:code.
func (h *Handler) Update(c *gin.Context) {
	code := c.Param("code")

	var req DiscountRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	discount, err := h.svc.UpdateDiscount(c.Request.Context(), code, domain.DiscountInput{
		Type:     req.Type,
		Discount: req.Discount,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.OK(c, discount)
}

// Delete handles DELETE /discount/:code.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteDiscount(c.Request.Context(), c.Param("code")); err != nil {
		pkg.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
