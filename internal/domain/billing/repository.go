package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirana/backend/internal/domain/shared"
)

// BillRepository defines persistence operations for bills. Bills are
// write-once; there are no update or delete operations.
type BillRepository interface {
	Save(ctx context.Context, bill *Bill) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Bill, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Bill, int64, error)
	FindRecentForTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*Bill, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// SumTotalsBetween returns the sum of bill totals and the bill count
	// for the tenant in the half-open interval [from, to).
	SumTotalsBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, int64, error)
}
