package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/catalog"
	"github.com/kirana/backend/internal/domain/shared"
	"github.com/kirana/backend/internal/infrastructure/logger"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByBarcodeForTenant(ctx context.Context, tenantID uuid.UUID, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, barcode)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) FindBelowMinimumForTenant(ctx context.Context, tenantID uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) SumInventoryValueForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockProductRepo) TryReserveStock(ctx context.Context, tenantID, id uuid.UUID, quantity int64) error {
	return m.Called(ctx, tenantID, id, quantity).Error(0)
}

func (m *mockProductRepo) ReleaseStock(ctx context.Context, tenantID, id uuid.UUID, quantity int64) error {
	return m.Called(ctx, tenantID, id, quantity).Error(0)
}

type mockBillRepo struct {
	mock.Mock
}

func (m *mockBillRepo) Save(ctx context.Context, bill *billing.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *mockBillRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, tenantID, id)
	if b := args.Get(0); b != nil {
		return b.(*billing.Bill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*billing.Bill, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*billing.Bill), args.Get(1).(int64), args.Error(2)
}

func (m *mockBillRepo) FindRecentForTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*billing.Bill, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Get(0).([]*billing.Bill), args.Error(1)
}

func (m *mockBillRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBillRepo) SumTotalsBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	products := new(mockProductRepo)
	bills := new(mockBillRepo)

	lowStock, err := catalog.NewProduct(tenantID, "Soap", "123",
		decimal.NewFromInt(30), catalog.DefaultGSTRate, 2, 10, "", "")
	require.NoError(t, err)

	bills.On("SumTotalsBetween", ctx, tenantID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromFloat(1234.50), int64(7), nil)
	products.On("CountForTenant", ctx, tenantID).Return(int64(42), nil)
	products.On("FindBelowMinimumForTenant", ctx, tenantID).Return([]*catalog.Product{lowStock}, nil)
	products.On("SumInventoryValueForTenant", ctx, tenantID).Return(decimal.NewFromFloat(98765.40), nil)

	svc := NewService(products, bills, logger.NewNop())
	stats, err := svc.GetStats(ctx, tenantID)
	require.NoError(t, err)

	assert.Equal(t, "1234.50", stats.TodaySales)
	assert.Equal(t, int64(7), stats.TodayTransactions)
	assert.Equal(t, int64(42), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, "98765.40", stats.TotalInventoryValue)

	products.AssertExpectations(t)
	bills.AssertExpectations(t)
}

func TestGetStatsUsesLocalDayBounds(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	products := new(mockProductRepo)
	bills := new(mockBillRepo)

	fixed := time.Date(2025, time.January, 15, 14, 30, 0, 0, time.Local)
	wantStart := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local)
	wantEnd := wantStart.AddDate(0, 0, 1)

	bills.On("SumTotalsBetween", ctx, tenantID, wantStart, wantEnd).
		Return(decimal.Zero, int64(0), nil)
	products.On("CountForTenant", ctx, tenantID).Return(int64(0), nil)
	products.On("FindBelowMinimumForTenant", ctx, tenantID).Return([]*catalog.Product{}, nil)
	products.On("SumInventoryValueForTenant", ctx, tenantID).Return(decimal.Zero, nil)

	svc := NewService(products, bills, logger.NewNop())
	svc.now = func() time.Time { return fixed }

	_, err := svc.GetStats(ctx, tenantID)
	require.NoError(t, err)
	bills.AssertExpectations(t)
}

func TestGetRecentBills(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	products := new(mockProductRepo)
	bills := new(mockBillRepo)

	draft, err := billing.Compose([]billing.LinePricing{{
		ProductID:   uuid.New(),
		ProductName: "Item",
		Barcode:     "123",
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(10),
		GSTRate:     decimal.NewFromInt(18),
	}})
	require.NoError(t, err)
	bill := billing.NewBill(tenantID, "SGS-20250115-001", draft, billing.PaymentCash, "")

	bills.On("FindRecentForTenant", ctx, tenantID, 10).Return([]*billing.Bill{bill}, nil)

	svc := NewService(products, bills, logger.NewNop())
	out, err := svc.GetRecentBills(ctx, tenantID, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "SGS-20250115-001", out[0].BillNumber)
	assert.Equal(t, 1, out[0].ItemCount)
}

func TestGetRecentBillsClampsLimit(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	products := new(mockProductRepo)
	bills := new(mockBillRepo)
	bills.On("FindRecentForTenant", ctx, tenantID, 50).Return([]*billing.Bill{}, nil)

	svc := NewService(products, bills, logger.NewNop())
	_, err := svc.GetRecentBills(ctx, tenantID, 200)
	require.NoError(t, err)
	bills.AssertExpectations(t)
}
