package discount

import (
	"context"
	"strings"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// discountService implements domain.DiscountService.
type discountService struct {
	repo domain.DiscountRepository
}

// NewService creates a new DiscountService with the given repository.
func NewService(repo domain.DiscountRepository) domain.DiscountService {
	return &discountService{repo: repo}
}

// CreateDiscount validates input and persists a new discount. Codes are
// stored uppercase; creating an existing code fails with a conflict.
func (s *discountService) CreateDiscount(ctx context.Context, input domain.DiscountInput) (*domain.Discount, error) {
	normalizeInput(&input)
	if err := validateInput(&input, true); err != nil {
		return nil, err
	}

	discount := &domain.Discount{
		Code:     input.Code,
		Type:     input.Type,
		Discount: input.Discount,
	}

	if err := s.repo.Create(ctx, discount); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "discount code already exists", err)
		}
		return nil, err
	}

	return discount, nil
}

// ListDiscounts returns discounts matching the page request.
func (s *discountService) ListDiscounts(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Discount], error) {
	return s.repo.List(ctx, req)
}

// UpdateDiscount loads the existing discount by code and applies changes.
// The code itself never changes.
func (s *discountService) UpdateDiscount(ctx context.Context, code string, input domain.DiscountInput) (*domain.Discount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "code is required", nil)
	}

	normalizeInput(&input)
	if err := validateInput(&input, false); err != nil {
		return nil, err
	}

	discount, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	discount.Type = input.Type
	discount.Discount = input.Discount

	if err := s.repo.Update(ctx, discount); err != nil {
		return nil, err
	}

	return discount, nil
}

// DeleteDiscount removes a discount by code.
func (s *discountService) DeleteDiscount(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.NewAppError(domain.CodeValidation, "code is required", nil)
	}
	return s.repo.Delete(ctx, code)
}

// normalizeInput uppercases the code and type.
func normalizeInput(input *domain.DiscountInput) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	input.Type = strings.ToUpper(strings.TrimSpace(input.Type))
}

// validateInput checks a normalized DiscountInput. The code is only required
// on create.
func validateInput(input *domain.DiscountInput, requireCode bool) error {
	if requireCode {
		if input.Code == "" {
			return domain.NewAppError(domain.CodeValidation, "code is required", nil)
		}
		if len(input.Code) < 3 || len(input.Code) > 50 {
			return domain.NewAppError(domain.CodeValidation, "code must be 3 to 50 characters", nil)
		}
	}

	if !domain.ValidDiscountType(input.Type) {
		return domain.NewAppError(domain.CodeValidation, "type must be PERCENTAGE or FIXED", nil)
	}

	if input.Discount <= 0 {
		return domain.NewAppError(domain.CodeValidation, "discount must be greater than 0", nil)
	}
	if input.Type == domain.DiscountPercentage && input.Discount > 100 {
		return domain.NewAppError(domain.CodeValidation, "percentage discount must not exceed 100", nil)
	}

	return nil
}
