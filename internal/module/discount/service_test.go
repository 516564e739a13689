package discount

import (
	"context"
	"errors"
	"testing"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// --- mock repository ---

type mockDiscountRepo struct {
	discounts map[string]*domain.Discount

	createErr error
	updateErr error
	deleteErr error
}

func newMockRepo() *mockDiscountRepo {
	return &mockDiscountRepo{discounts: make(map[string]*domain.Discount)}
}

func (m *mockDiscountRepo) Create(_ context.Context, d *domain.Discount) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.discounts[d.Code]; ok {
		return domain.NewAppError(domain.CodeAlreadyExists, "duplicate", nil)
	}
	m.discounts[d.Code] = d
	return nil
}

func (m *mockDiscountRepo) GetByCode(_ context.Context, code string) (*domain.Discount, error) {
	d, ok := m.discounts[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockDiscountRepo) List(_ context.Context, req domain.PageRequest) (*domain.PageResult[domain.Discount], error) {
	items := make([]domain.Discount, 0, len(m.discounts))
	for _, d := range m.discounts {
		items = append(items, *d)
	}
	return &domain.PageResult[domain.Discount]{
		Items:        items,
		TotalItems:   int64(len(items)),
		CurrentPage:  req.Page,
		ItemsPerPage: req.PageSize,
	}, nil
}

func (m *mockDiscountRepo) Update(_ context.Context, d *domain.Discount) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.discounts[d.Code]; !ok {
		return domain.ErrNotFound
	}
	m.discounts[d.Code] = d
	return nil
}

func (m *mockDiscountRepo) Delete(_ context.Context, code string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.discounts[code]; !ok {
		return domain.ErrNotFound
	}
	delete(m.discounts, code)
	return nil
}

// --- tests ---

func TestCreateDiscount(t *testing.T) {
	tests := []struct {
		name    string
		input   domain.DiscountInput
		wantErr bool
		errCode domain.ErrorCode
	}{
		{"success percentage", domain.DiscountInput{Code: "SAVE20", Type: "PERCENTAGE", Discount: 20}, false, 0},
		{"success fixed", domain.DiscountInput{Code: "FLAT5", Type: "FIXED", Discount: 5}, false, 0},
		{"lowercase normalized", domain.DiscountInput{Code: "save20", Type: "percentage", Discount: 20}, false, 0},
		{"empty code", domain.DiscountInput{Type: "FIXED", Discount: 5}, true, domain.CodeValidation},
		{"short code", domain.DiscountInput{Code: "AB", Type: "FIXED", Discount: 5}, true, domain.CodeValidation},
		{"bad type", domain.DiscountInput{Code: "SAVE20", Type: "BOGOF", Discount: 5}, true, domain.CodeValidation},
		{"zero value", domain.DiscountInput{Code: "SAVE20", Type: "FIXED", Discount: 0}, true, domain.CodeValidation},
		{"percentage over 100", domain.DiscountInput{Code: "SAVE200", Type: "PERCENTAGE", Discount: 200}, true, domain.CodeValidation},
		{"fixed over 100 allowed", domain.DiscountInput{Code: "BIG", Type: "FIXED", Discount: 200}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMockRepo())
			d, err := svc.CreateDiscount(context.Background(), tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var appErr *domain.AppError
				if !errors.As(err, &appErr) || appErr.Code != tt.errCode {
					t.Errorf("expected error code %d, got %v", tt.errCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Code == "" {
				t.Fatal("expected non-empty code")
			}
			for _, r := range d.Code {
				if r >= 'a' && r <= 'z' {
					t.Errorf("code should be uppercase, got %q", d.Code)
					break
				}
			}
		})
	}
}

func TestCreateDiscountDuplicate(t *testing.T) {
	svc := NewService(newMockRepo())
	input := domain.DiscountInput{Code: "SAVE20", Type: "PERCENTAGE", Discount: 20}

	if _, err := svc.CreateDiscount(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateDiscount(context.Background(), input)
	if err == nil {
		t.Fatal("expected conflict")
	}
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Code != domain.CodeAlreadyExists {
		t.Fatalf("err = %v, want already-exists", err)
	}
	if appErr.Message != "discount code already exists" {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestUpdateDiscountKeepsCode(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.CreateDiscount(context.Background(), domain.DiscountInput{
		Code: "SAVE20", Type: "PERCENTAGE", Discount: 20,
	}); err != nil {
		t.Fatal(err)
	}

	// The input code, even if different, never changes the identity.
	updated, err := svc.UpdateDiscount(context.Background(), "save20", domain.DiscountInput{
		Code: "OTHER", Type: "FIXED", Discount: 7,
	})
	if err != nil {
		t.Fatalf("UpdateDiscount: %v", err)
	}
	if updated.Code != "SAVE20" {
		t.Errorf("code = %q, must stay SAVE20", updated.Code)
	}
	if updated.Type != "FIXED" || updated.Discount != 7 {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUpdateDiscountNotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.UpdateDiscount(context.Background(), "NOPE", domain.DiscountInput{
		Type: "FIXED", Discount: 5,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDiscount(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.CreateDiscount(context.Background(), domain.DiscountInput{
		Code: "SAVE20", Type: "PERCENTAGE", Discount: 20,
	}); err != nil {
		t.Fatal(err)
	}

	// Deletion accepts any case.
	if err := svc.DeleteDiscount(context.Background(), "save20"); err != nil {
		t.Fatalf("DeleteDiscount: %v", err)
	}
	if err := svc.DeleteDiscount(context.Background(), "SAVE20"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteDiscount(context.Background(), "  "); err == nil {
		t.Error("blank code should fail validation")
	}
}
