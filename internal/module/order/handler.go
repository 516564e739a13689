package order

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Handler handles REST API requests for the order resource.
type Handler struct {
	svc domain.OrderService
}

// NewHandler creates a new order Handler.
func NewHandler(svc domain.OrderService) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /orders.
func (h *Handler) Create(c *gin.Context) {
	var req OrderRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	input, err := toInput(req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), input)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, order)
}

// List handles GET /orders.
func (h *Handler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c, "id")

	result, err := h.svc.ListOrders(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.OK(c, result.Items)
}

// Update handles PUT /orders/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req OrderRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	input, err := toInput(req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	order, err := h.svc.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.OK(c, order)
}

// toInput converts an OrderRequest into a domain input, parsing the ISO 8601
// order date.
func toInput(req OrderRequest) (domain.OrderInput, error) {
	date, err := time.Parse(time.RFC3339, req.OrderDate)
	if err != nil {
		// Date-only form used by the console's date picker.
		date, err = time.Parse("2006-01-02", req.OrderDate)
	}
	if err != nil {
		return domain.OrderInput{}, domain.NewAppError(domain.CodeValidation, "order date must be an ISO 8601 timestamp", err)
	}

	return domain.OrderInput{
		CustomerName: req.CustomerName,
		Total:        req.Total,
		Status:       req.Status,
		OrderDate:    date,
		Notes:        req.Notes,
	}, nil
}

// parseID extracts and validates the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
