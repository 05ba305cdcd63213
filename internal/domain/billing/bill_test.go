package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"cash", "CARD", " mobile "} {
		m, err := ParsePaymentMethod(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, m)
	}

	_, err := ParsePaymentMethod("cheque")
	assert.Error(t, err)
	_, err = ParsePaymentMethod("")
	assert.Error(t, err)
}

func TestNewBill(t *testing.T) {
	tenantID := uuid.New()
	draft, err := Compose([]LinePricing{
		{
			ProductID:   uuid.New(),
			ProductName: "Toor Dal 1kg",
			Barcode:     "890100000001",
			Quantity:    2,
			UnitPrice:   decimal.NewFromFloat(120.00),
			GSTRate:     decimal.NewFromInt(5),
		},
	})
	require.NoError(t, err)

	bill := NewBill(tenantID, "SGS-20250115-001", draft, PaymentCash, " Asha ")

	assert.Equal(t, tenantID, bill.TenantID)
	assert.Equal(t, "SGS-20250115-001", bill.BillNumber)
	assert.Equal(t, "Asha", bill.CustomerName)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, bill.ID, bill.Items[0].BillID)
	assert.Equal(t, "Toor Dal 1kg", bill.Items[0].ProductName)
	assert.Equal(t, "240.00", bill.Subtotal.StringFixed(2))
	assert.Equal(t, "12.00", bill.GSTAmount.StringFixed(2))
	assert.Equal(t, "252.00", bill.Total.StringFixed(2))
}
