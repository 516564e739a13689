package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/middleware"
	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Handler handles authentication requests.
type Handler struct {
	svc Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.OK(c, token)
}

// Register handles POST /register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.MobileNumber, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, ProfileResponse{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		Roles:        user.Roles,
	})
}

// Profile handles GET /profile. Requires authentication.
func (h *Handler) Profile(c *gin.Context) {
	userID := middleware.AuthUserID(c)
	if userID == "" {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.svc.Profile(c.Request.Context(), userID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.OK(c, ProfileResponse{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		Roles:        user.Roles,
	})
}
