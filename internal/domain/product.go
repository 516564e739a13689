package domain

import "context"

// Product represents a store product.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"productId"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Popularity  int     `json:"popularity"`
	Description string  `gorm:"size:2000" json:"description"`
	ImageURL    string  `gorm:"size:500" json:"imageUrl"`
	Timestamps
}

// ProductRepository defines the data access interface for products.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
}

// ProductService defines the business logic interface for products.
type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	UpdateProduct(ctx context.Context, id uint, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// ProductInput carries the editable product surface through the service layer.
type ProductInput struct {
	Name        string
	Price       float64
	Popularity  int
	Description string
	ImageURL    string
}
