package product

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simp-lee/storeadmin/internal/config"
	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Extensions accepted for product image uploads.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Handler handles REST API requests for the product resource.
type Handler struct {
	svc    domain.ProductService
	upload config.UploadConfig
}

// NewHandler creates a new product Handler.
func NewHandler(svc domain.ProductService, upload config.UploadConfig) *Handler {
	return &Handler{svc: svc, upload: upload}
}

// Create handles POST /products.
func (h *Handler) Create(c *gin.Context) {
	var req ProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), domain.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Popularity:  req.Popularity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, product)
}

// List handles GET /products. The whole collection is returned as a bare
// array unless paging parameters are supplied.
func (h *Handler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c, "id")

	result, err := h.svc.ListProducts(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.OK(c, result.Items)
}

// Update handles PUT /products/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req ProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), id, domain.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Popularity:  req.Popularity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.OK(c, product)
}

// Delete handles DELETE /products/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /products/upload-image. It accepts a multipart
// form with an "imageFile" part, stores the file under the upload directory
// with a random name, and responds with the public URL as plain text.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("imageFile")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "imageFile is required", err))
		return
	}

	maxBytes := int64(h.upload.MaxSizeMB) * 1024 * 1024
	if maxBytes > 0 && file.Size > maxBytes {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("image must not exceed %d MB", h.upload.MaxSizeMB), nil))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "unsupported image type", nil))
		return
	}

	if err := os.MkdirAll(h.upload.Dir, 0o755); err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to prepare upload directory", err))
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(h.upload.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to store image", err))
		return
	}

	url := h.upload.BaseURL + "/uploads/" + name
	c.String(http.StatusOK, url)
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
