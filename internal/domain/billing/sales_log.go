package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirana/backend/internal/domain/shared"
)

// SalesLogEntry is a denormalized record of one sold line item, kept for
// per-product reporting. Entries are written best-effort after the bill
// commits: a failed append never unwinds the bill, it only leaves a gap
// in the report.
type SalesLogEntry struct {
	shared.BaseEntity
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillNumber  string          `gorm:"type:varchar(32);not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SoldAt      time.Time       `gorm:"not null;index"`
}

// TableName specifies the database table name
func (SalesLogEntry) TableName() string {
	return "sales_logs"
}

// SalesLogRepository appends and reads the sales history log
type SalesLogRepository interface {
	Append(ctx context.Context, entry *SalesLogEntry) error
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*SalesLogEntry, int64, error)
}

// NewSalesLogEntries builds one log entry per line of a committed bill.
// The line total includes GST so per-product revenue sums to the bill.
func NewSalesLogEntries(bill *Bill) []*SalesLogEntry {
	entries := make([]*SalesLogEntry, 0, len(bill.Items))
	for _, item := range bill.Items {
		entries = append(entries, &SalesLogEntry{
			BaseEntity:  shared.NewBaseEntity(),
			TenantID:    bill.TenantID,
			BillID:      bill.ID,
			BillNumber:  bill.BillNumber,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.Subtotal.Add(item.GSTAmount),
			SoldAt:      bill.CreatedAt,
		})
	}
	return entries
}
