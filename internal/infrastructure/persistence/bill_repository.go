package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/shared"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a GORM-backed bill repository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Save persists a bill and its items. A bill number collision surfaces as
// a concurrency conflict so the caller can reallocate and retry.
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	err := r.db.WithContext(ctx).Create(bill).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bill number %s already taken: %w", bill.BillNumber, shared.ErrConcurrencyConflict)
		}
		return err
	}
	return nil
}

// isUniqueViolation detects unique constraint violations across the
// drivers in use (pgconn 23505, sqlite UNIQUE message, gorm translation).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// FindByIDForTenant retrieves a bill with its items scoped to the tenant
func (r *GormBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	var bill billing.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindAllForTenant returns a page of the tenant's bills, newest first
func (r *GormBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*billing.Bill, int64, error) {
	query := r.db.WithContext(ctx).Model(&billing.Bill{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bills []*billing.Bill
	q := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Order("created_at desc")
	if filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := q.Find(&bills).Error; err != nil {
		return nil, 0, err
	}
	return bills, total, nil
}

// FindRecentForTenant returns the newest bills up to limit
func (r *GormBillRepository) FindRecentForTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*billing.Bill, error) {
	var bills []*billing.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Limit(limit).
		Find(&bills).Error
	return bills, err
}

// CountForTenant returns the number of bills for the tenant
func (r *GormBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&billing.Bill{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

// SumTotalsBetween returns the sum of bill totals and the bill count for
// the tenant in [from, to)
func (r *GormBillRepository) SumTotalsBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.NullDecimal
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&billing.Bill{}).
		Select("SUM(total) as total, COUNT(*) as count").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	if !row.Total.Valid {
		return decimal.Zero, row.Count, nil
	}
	return row.Total.Decimal, row.Count, nil
}
