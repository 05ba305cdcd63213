package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DayFormat is the calendar-day layout embedded in bill numbers.
const DayFormat = "20060102"

// BillSequence is one per-(store, day) counter row. The counter only ever
// moves forward; numbers from crashed attempts are simply skipped.
type BillSequence struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day      string    `gorm:"type:varchar(8);primaryKey"`
	Seq      int64     `gorm:"not null"`
}

// TableName specifies the database table name
func (BillSequence) TableName() string {
	return "bill_sequences"
}

// BillSequenceRepository allocates bill numbers.
type BillSequenceRepository interface {
	// Next atomically increments and returns the counter for the given
	// store and day. The first call for a day returns 1. Two concurrent
	// calls never receive the same value.
	Next(ctx context.Context, tenantID uuid.UUID, day string) (int64, error)
}

// FormatBillNumber renders a bill number as <CODE>-<YYYYMMDD>-<NNN>.
// The sequence is zero-padded to three digits and simply grows wider
// past 999.
func FormatBillNumber(storeCode, day string, seq int64) string {
	return fmt.Sprintf("%s-%s-%03d", storeCode, day, seq)
}

// Day renders a timestamp as the calendar day used in bill numbers
func Day(t time.Time) string {
	return t.Format(DayFormat)
}
