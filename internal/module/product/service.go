package product

import (
	"context"
	"strings"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// productService implements domain.ProductService.
type productService struct {
	repo domain.ProductRepository
}

// NewService creates a new ProductService with the given repository.
func NewService(repo domain.ProductRepository) domain.ProductService {
	return &productService{repo: repo}
}

// CreateProduct validates input, builds a Product, and persists it.
func (s *productService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Popularity:  input.Popularity,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID.
func (s *productService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts returns products matching the page request.
func (s *productService) ListProducts(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	return s.repo.List(ctx, req)
}

// UpdateProduct loads the existing product, applies changes, and persists them.
// An empty ImageURL in the input keeps the stored image, so edits that do not
// re-upload a file retain the previous one.
func (s *productService) UpdateProduct(ctx context.Context, id uint, input domain.ProductInput) (*domain.Product, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Popularity = input.Popularity
	product.Description = input.Description
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product by ID.
func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// validateInput normalizes and checks a ProductInput in place.
func validateInput(input *domain.ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.ImageURL = strings.TrimSpace(input.ImageURL)

	if input.Name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if input.Price <= 0 {
		return domain.NewAppError(domain.CodeValidation, "price must be greater than 0", nil)
	}
	if input.Popularity < 0 || input.Popularity > 100 {
		return domain.NewAppError(domain.CodeValidation, "popularity must be between 0 and 100", nil)
	}
	if input.Description == "" {
		return domain.NewAppError(domain.CodeValidation, "description is required", nil)
	}
	return nil
}
