package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// --- mock repository ---

type mockOrderRepo struct {
	orders map[uint]*domain.Order
	nextID uint

	createErr error
	updateErr error
}

func newMockRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uint]*domain.Order), nextID: 1}
}

func (m *mockOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	o.ID = m.nextID
	m.nextID++
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uint) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) List(_ context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	items := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		items = append(items, *o)
	}
	return &domain.PageResult[domain.Order]{
		Items:        items,
		TotalItems:   int64(len(items)),
		CurrentPage:  req.Page,
		ItemsPerPage: req.PageSize,
	}, nil
}

func (m *mockOrderRepo) Update(_ context.Context, o *domain.Order) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	m.orders[o.ID] = o
	return nil
}

// --- tests ---

func validInput() domain.OrderInput {
	return domain.OrderInput{
		CustomerName: "Alice",
		Total:        42.50,
		Status:       "pending",
		OrderDate:    time.Now().Add(-time.Hour),
		Notes:        "leave at door",
	}
}

func TestCreateOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.OrderInput)
		wantErr bool
	}{
		{"success", func(i *domain.OrderInput) {}, false},
		{"status case normalized", func(i *domain.OrderInput) { i.Status = " Shipped " }, false},
		{"empty customer", func(i *domain.OrderInput) { i.CustomerName = "  " }, true},
		{"zero total", func(i *domain.OrderInput) { i.Total = 0 }, true},
		{"unknown status", func(i *domain.OrderInput) { i.Status = "lost" }, true},
		{"zero date", func(i *domain.OrderInput) { i.OrderDate = time.Time{} }, true},
		{"far future date", func(i *domain.OrderInput) { i.OrderDate = time.Now().Add(48 * time.Hour) }, true},
		{"same day future is fine", func(i *domain.OrderInput) { i.OrderDate = time.Now().Add(time.Hour) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMockRepo())
			input := validInput()
			tt.mutate(&input)

			order, err := svc.CreateOrder(context.Background(), input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var appErr *domain.AppError
				if !errors.As(err, &appErr) || appErr.Code != domain.CodeValidation {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if order.ID == 0 {
				t.Error("expected assigned ID")
			}
			if order.Status != domain.OrderPending && tt.name == "success" {
				t.Errorf("status = %q", order.Status)
			}
		})
	}
}

func TestUpdateOrderStatusChange(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	created, err := svc.CreateOrder(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	input := validInput()
	input.Status = "cancelled"
	updated, err := svc.UpdateOrder(context.Background(), created.ID, input)
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if updated.Status != domain.OrderCancelled {
		t.Errorf("status = %q, want cancelled", updated.Status)
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Status != domain.OrderCancelled {
		t.Errorf("stored status = %q", stored.Status)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.UpdateOrder(context.Background(), 42, validInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
