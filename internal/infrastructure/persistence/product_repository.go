package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kirana/backend/internal/domain/catalog"
	"github.com/kirana/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a GORM-backed product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) tenantScope(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
}

// FindByIDForTenant retrieves a product scoped to the tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := r.tenantScope(ctx, tenantID).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByBarcodeForTenant retrieves a product by barcode scoped to the tenant
func (r *GormProductRepository) FindByBarcodeForTenant(ctx context.Context, tenantID uuid.UUID, barcode string) (*catalog.Product, error) {
	var product catalog.Product
	err := r.tenantScope(ctx, tenantID).Where("barcode = ?", barcode).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAllForTenant returns a page of the tenant's products with the total count
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*catalog.Product, int64, error) {
	scoped := func() *gorm.DB {
		q := r.tenantScope(ctx, tenantID).Model(&catalog.Product{})
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			q = q.Where("name LIKE ? OR barcode LIKE ? OR category LIKE ?", pattern, pattern, pattern)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "name asc"
	if filter.OrderBy != "" {
		dir := "asc"
		if filter.OrderDir == "desc" {
			dir = "desc"
		}
		order = filter.OrderBy + " " + dir
	}

	query := scoped()
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var products []*catalog.Product
	if err := query.Order(order).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindBelowMinimumForTenant returns products whose stock is at or below the alert threshold
func (r *GormProductRepository) FindBelowMinimumForTenant(ctx context.Context, tenantID uuid.UUID) ([]*catalog.Product, error) {
	var products []*catalog.Product
	err := r.tenantScope(ctx, tenantID).
		Where("stock <= min_stock_alert").
		Order("stock asc").
		Find(&products).Error
	return products, err
}

// CountForTenant returns the number of products in the tenant's catalog
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.tenantScope(ctx, tenantID).Model(&catalog.Product{}).Count(&count).Error
	return count, err
}

// SumInventoryValueForTenant returns the total value of on-hand stock
func (r *GormProductRepository) SumInventoryValueForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var value decimal.NullDecimal
	err := r.tenantScope(ctx, tenantID).Model(&catalog.Product{}).
		Select("SUM(price * stock)").
		Scan(&value).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !value.Valid {
		return decimal.Zero, nil
	}
	return value.Decimal, nil
}

// Save persists a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// DeleteForTenant removes a product scoped to the tenant
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.tenantScope(ctx, tenantID).Where("id = ?", id).Delete(&catalog.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TryReserveStock decrements stock in a single conditional UPDATE. The
// WHERE clause is the whole trick: the decrement only lands when enough
// stock remains, so concurrent reservations serialize on the row and can
// never drive stock negative.
func (r *GormProductRepository) TryReserveStock(ctx context.Context, tenantID, id uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "quantity must be greater than zero")
	}

	result := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ? AND id = ? AND stock >= ?", tenantID, id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// No row matched: either the product is missing or stock is short.
	// Re-read to tell the two apart and report the available quantity.
	product, err := r.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	return shared.NewInsufficientStockError(product.Name, product.Stock, quantity)
}

// ReleaseStock returns a previously reserved quantity to stock
func (r *GormProductRepository) ReleaseStock(ctx context.Context, tenantID, id uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "quantity must be greater than zero")
	}

	result := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
