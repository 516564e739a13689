package domain

import (
	"context"
	"time"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Order represents a customer order. Orders are never deleted; cancellation
// is a status change.
type Order struct {
	ID           uint      `gorm:"primaryKey" json:"orderId"`
	CustomerName string    `gorm:"size:100;not null" json:"customerName"`
	Total        float64   `gorm:"not null" json:"total"`
	Status       string    `gorm:"size:20;not null;default:pending" json:"status"`
	OrderDate    time.Time `json:"orderDate"`
	Notes        string    `gorm:"size:1000" json:"notes"`
	Timestamps
}

// ValidOrderStatus reports whether status is one of the known order statuses.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderRepository defines the data access interface for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Order], error)
	Update(ctx context.Context, order *Order) error
}

// OrderService defines the business logic interface for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input OrderInput) (*Order, error)
	GetOrder(ctx context.Context, id uint) (*Order, error)
	ListOrders(ctx context.Context, req PageRequest) (*PageResult[Order], error)
	UpdateOrder(ctx context.Context, id uint, input OrderInput) (*Order, error)
}

// OrderInput carries the editable order surface through the service layer.
type OrderInput struct {
	CustomerName string
	Total        float64
	Status       string
	OrderDate    time.Time
	Notes        string
}
