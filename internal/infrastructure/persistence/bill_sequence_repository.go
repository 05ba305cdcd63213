package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBillSequenceRepository implements billing.BillSequenceRepository.
//
// Allocation is a single upsert with RETURNING, so two concurrent callers
// serialize on the counter row inside the database and always see distinct
// values. The statement works on both PostgreSQL and SQLite.
type GormBillSequenceRepository struct {
	db *gorm.DB
}

// NewGormBillSequenceRepository creates a GORM-backed sequence repository
func NewGormBillSequenceRepository(db *gorm.DB) *GormBillSequenceRepository {
	return &GormBillSequenceRepository{db: db}
}

// Next atomically increments and returns the counter for (tenant, day)
func (r *GormBillSequenceRepository) Next(ctx context.Context, tenantID uuid.UUID, day string) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO bill_sequences (tenant_id, day, seq)
		VALUES (?, ?, 1)
		ON CONFLICT (tenant_id, day)
		DO UPDATE SET seq = bill_sequences.seq + 1
		RETURNING seq`,
		tenantID, day).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
