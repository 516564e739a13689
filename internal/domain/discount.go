package domain

import "context"

// Discount types.
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Discount represents a coupon code. The code itself is the identity and is
// always stored uppercase.
type Discount struct {
	Code     string  `gorm:"primaryKey;size:50" json:"code"`
	Type     string  `gorm:"size:20;not null" json:"type"`
	Discount float64 `gorm:"not null" json:"discount"`
	Timestamps
}

// ValidDiscountType reports whether t is one of the known discount types.
func ValidDiscountType(t string) bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// DiscountRepository defines the data access interface for discounts.
type DiscountRepository interface {
	Create(ctx context.Context, discount *Discount) error
	GetByCode(ctx context.Context, code string) (*Discount, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Discount], error)
	Update(ctx context.Context, discount *Discount) error
	Delete(ctx context.Context, code string) error
}

// DiscountService defines the business logic interface for discounts.
type DiscountService interface {
	CreateDiscount(ctx context.Context, input DiscountInput) (*Discount, error)
	ListDiscounts(ctx context.Context, req PageRequest) (*PageResult[Discount], error)
	UpdateDiscount(ctx context.Context, code string, input DiscountInput) (*Discount, error)
	DeleteDiscount(ctx context.Context, code string) error
}

// DiscountInput carries the editable discount surface through the service layer.
type DiscountInput struct {
	Code     string
	Type     string
	Discount float64
}
