package order

import (
	"context"
	"strings"
	"time"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// orderService implements domain.OrderService.
type orderService struct {
	repo domain.OrderRepository
}

// NewService creates a new OrderService with the given repository.
func NewService(repo domain.OrderRepository) domain.OrderService {
	return &orderService{repo: repo}
}

// CreateOrder validates input, builds an Order, and persists it.
func (s *orderService) CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerName: input.CustomerName,
		Total:        input.Total,
		Status:       input.Status,
		OrderDate:    input.OrderDate,
		Notes:        input.Notes,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *orderService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns orders matching the page request.
func (s *orderService) ListOrders(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	return s.repo.List(ctx, req)
}

// UpdateOrder loads the existing order, applies changes, and persists them.
// There is no delete operation; cancellation is an update to the cancelled
// status.
func (s *orderService) UpdateOrder(ctx context.Context, id uint, input domain.OrderInput) (*domain.Order, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.CustomerName = input.CustomerName
	order.Total = input.Total
	order.Status = input.Status
	order.OrderDate = input.OrderDate
	order.Notes = input.Notes

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// validateInput normalizes and checks an OrderInput in place.
func validateInput(input *domain.OrderInput) error {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	input.Notes = strings.TrimSpace(input.Notes)

	if input.CustomerName == "" {
		return domain.NewAppError(domain.CodeValidation, "customer name is required", nil)
	}
	if input.Total <= 0 {
		return domain.NewAppError(domain.CodeValidation, "total must be greater than 0", nil)
	}
	if !domain.ValidOrderStatus(input.Status) {
		return domain.NewAppError(domain.CodeValidation, "status must be one of pending, processing, shipped, delivered, cancelled", nil)
	}
	if input.OrderDate.IsZero() {
		return domain.NewAppError(domain.CodeValidation, "order date is required", nil)
	}
	if input.OrderDate.After(time.Now().Add(24 * time.Hour)) {
		return domain.NewAppError(domain.CodeValidation, "order date must not be in the future", nil)
	}
	return nil
}
