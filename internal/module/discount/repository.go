package discount

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"code", "type", "discount", "created_at"}
	allowedFilterFields = []string{"code", "type"}
)

// discountRepository implements domain.DiscountRepository using GORM.
type discountRepository struct {
	db *gorm.DB
}

// NewRepository creates a new DiscountRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.DiscountRepository {
	return &discountRepository{db: db}
}

// Create inserts a new discount into the database. The existence check and
// the insert run in one transaction so a concurrent create of the same code
// surfaces as a conflict rather than a dialect-specific driver error.
func (r *discountRepository) Create(ctx context.Context, discount *domain.Discount) error {
	return pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Discount{}).Where("code = ?", discount.Code).Count(&count).Error; err != nil {
			return pkg.MapDBError(err)
		}
		if count > 0 {
			return domain.ErrAlreadyExists
		}
		if err := tx.Create(discount).Error; err != nil {
			return pkg.MapDBError(err)
		}
		return nil
	})
}

// GetByCode retrieves a discount by its code.
func (r *discountRepository) GetByCode(ctx context.Context, code string) (*domain.Discount, error) {
	var discount domain.Discount
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&discount).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &discount, nil
}

// List returns discounts matching the page request.
func (r *discountRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Discount], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Discount{}).
		Scopes(pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var discounts []domain.Discount
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&discounts).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(discounts, total, req), nil
}

// Update saves changes to an existing discount.
func (r *discountRepository) Update(ctx context.Context, discount *domain.Discount) error {
	if err := r.db.WithContext(ctx).Save(discount).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a discount by code.
func (r *discountRepository) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Where("code = ?", code).Delete(&domain.Discount{})
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
