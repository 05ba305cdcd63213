package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/shared"
)

// GormSalesLogRepository implements billing.SalesLogRepository using GORM
type GormSalesLogRepository struct {
	db *gorm.DB
}

// NewGormSalesLogRepository creates a GORM-backed sales log repository
func NewGormSalesLogRepository(db *gorm.DB) *GormSalesLogRepository {
	return &GormSalesLogRepository{db: db}
}

// Append writes one sales log entry
func (r *GormSalesLogRepository) Append(ctx context.Context, entry *billing.SalesLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindAllForTenant returns a page of the tenant's sales log, newest first
func (r *GormSalesLogRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*billing.SalesLogEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&billing.SalesLogEntry{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*billing.SalesLogEntry
	q := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sold_at desc")
	if filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
