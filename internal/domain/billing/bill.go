package billing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirana/backend/internal/domain/shared"
)

// PaymentMethod identifies how a bill was settled
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// ParsePaymentMethod validates and normalizes a payment method string
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	case PaymentMobile:
		return PaymentMobile, nil
	default:
		return "", shared.NewDomainError("INVALID_PAYMENT_METHOD", "payment method must be cash, card or mobile")
	}
}

// BillItem is one line of a committed bill. Product details are snapshotted
// at sale time so later catalog edits never change past bills.
type BillItem struct {
	shared.BaseEntity
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Barcode     string          `gorm:"type:varchar(64);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTRate     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName specifies the database table name
func (BillItem) TableName() string {
	return "bill_items"
}

// Bill is a committed point-of-sale transaction. Bills are immutable once
// persisted: there is no update or delete path, only reads.
type Bill struct {
	shared.TenantAggregateRoot
	BillNumber    string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Items         []BillItem      `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(16);not null"`
	CustomerName  string          `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name
func (Bill) TableName() string {
	return "bills"
}

// NewBill assembles a bill from a composed draft, a freshly allocated bill
// number and the payment details.
func NewBill(tenantID uuid.UUID, billNumber string, draft *Draft, paymentMethod PaymentMethod, customerName string) *Bill {
	root := shared.NewTenantAggregateRoot(tenantID)
	items := make([]BillItem, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		items = append(items, BillItem{
			BaseEntity:  shared.NewBaseEntity(),
			BillID:      root.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Barcode:     line.Barcode,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			GSTRate:     line.GSTRate,
			Subtotal:    line.Subtotal,
			GSTAmount:   line.GSTAmount,
		})
	}
	return &Bill{
		TenantAggregateRoot: root,
		BillNumber:          billNumber,
		Items:               items,
		Subtotal:            draft.Subtotal,
		GSTAmount:           draft.GSTAmount,
		Total:               draft.Total,
		PaymentMethod:       paymentMethod,
		CustomerName:        strings.TrimSpace(customerName),
	}
}
