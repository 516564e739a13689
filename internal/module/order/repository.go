package order

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "customer_name", "total", "status", "order_date", "created_at"}
	allowedFilterFields = []string{"customer_name", "status"}
)

// orderRepository implements domain.OrderRepository using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewRepository creates a new OrderRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order into the database.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves an order by its primary key.
func (r *orderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &order, nil
}

// List returns orders matching the page request.
func (r *orderRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Order{}).
		Scopes(pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var orders []domain.Order
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&orders).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(orders, total, req), nil
}

// Update saves changes to an existing order.
func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}
