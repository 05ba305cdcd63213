package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/kirana/backend/internal/application/billing"
	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/shared"
)

func composedBill(t *testing.T, tenantID uuid.UUID, number string) *billing.Bill {
	t.Helper()
	draft, err := billing.Compose([]billing.LinePricing{{
		ProductID:   uuid.New(),
		ProductName: "Toor Dal 1kg",
		Barcode:     "890100000001",
		Quantity:    2,
		UnitPrice:   decimal.NewFromFloat(120.00),
		GSTRate:     decimal.NewFromInt(5),
	}})
	require.NoError(t, err)
	return billing.NewBill(tenantID, number, draft, billing.PaymentCash, "Asha")
}

func TestBillSaveAndFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormBillRepository(db)
	tenantID := uuid.New()

	bill := composedBill(t, tenantID, "SGS-20250115-001")
	require.NoError(t, repo.Save(ctx, bill))

	got, err := repo.FindByIDForTenant(ctx, tenantID, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "SGS-20250115-001", got.BillNumber)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Toor Dal 1kg", got.Items[0].ProductName)
	assert.Equal(t, "252.00", got.Total.StringFixed(2))
}

func TestBillSaveDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBillRepository(newTestDB(t))
	tenantID := uuid.New()

	require.NoError(t, repo.Save(ctx, composedBill(t, tenantID, "SGS-20250115-001")))

	err := repo.Save(ctx, composedBill(t, tenantID, "SGS-20250115-001"))
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestBillTenantIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBillRepository(newTestDB(t))
	tenantID := uuid.New()

	bill := composedBill(t, tenantID, "SGS-20250115-001")
	require.NoError(t, repo.Save(ctx, bill))

	_, err := repo.FindByIDForTenant(ctx, uuid.New(), bill.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	bills, total, err := repo.FindAllForTenant(ctx, uuid.New(), shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, bills)
	assert.Zero(t, total)
}

func TestBillSumTotalsBetween(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormBillRepository(db)
	tenantID := uuid.New()

	today := composedBill(t, tenantID, "SGS-20250115-001")
	require.NoError(t, repo.Save(ctx, today))

	yesterday := composedBill(t, tenantID, "SGS-20250114-001")
	require.NoError(t, repo.Save(ctx, yesterday))
	// Backdate outside the query window.
	require.NoError(t, db.Model(&billing.Bill{}).
		Where("id = ?", yesterday.ID).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	total, count, err := repo.SumTotalsBetween(ctx, tenantID, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "252.00", total.StringFixed(2))
}

func TestBillFindRecentForTenant(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormBillRepository(db)
	tenantID := uuid.New()

	for i, number := range []string{"SGS-20250115-001", "SGS-20250115-002", "SGS-20250115-003"} {
		bill := composedBill(t, tenantID, number)
		require.NoError(t, repo.Save(ctx, bill))
		// Space creation times so ordering is deterministic.
		require.NoError(t, db.Model(&billing.Bill{}).
			Where("id = ?", bill.ID).
			Update("created_at", time.Now().Add(time.Duration(i)*time.Second)).Error)
	}

	recent, err := repo.FindRecentForTenant(ctx, tenantID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "SGS-20250115-003", recent[0].BillNumber)
	assert.Equal(t, "SGS-20250115-002", recent[1].BillNumber)
}

func TestSalesLogRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormSalesLogRepository(db)
	tenantID := uuid.New()

	entry := &billing.SalesLogEntry{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		BillID:      uuid.New(),
		BillNumber:  "SGS-20250115-001",
		ProductID:   uuid.New(),
		ProductName: "Toor Dal 1kg",
		Quantity:    2,
		UnitPrice:   decimal.NewFromFloat(120.00),
		LineTotal:   decimal.NewFromFloat(252.00),
		SoldAt:      time.Now(),
	}
	require.NoError(t, repo.Append(ctx, entry))

	entries, total, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, "SGS-20250115-001", entries[0].BillNumber)
	assert.Equal(t, entry.ProductID, entries[0].ProductID)
	assert.Equal(t, int64(2), entries[0].Quantity)
	assert.Equal(t, "252.00", entries[0].LineTotal.StringFixed(2))

	_, otherTotal, err := repo.FindAllForTenant(ctx, uuid.New(), shared.Filter{})
	require.NoError(t, err)
	assert.Zero(t, otherTotal)
}

// A failure after the stock decrement must leave stock untouched once
// the transaction rolls back.
func TestGormTransactionScopeRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	products := NewGormProductRepository(db)
	tenantID := uuid.New()

	p := seedProduct(t, products, tenantID, "Rice 5kg", 400, 10)

	boom := errors.New("boom")
	err := scope.Execute(ctx, func(ctx context.Context, repos appbilling.TransactionalRepositories) error {
		if err := repos.Products.TryReserveStock(ctx, tenantID, p.ID, 4); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := products.FindByIDForTenant(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Stock, "rollback must restore the reserved stock")
}

func TestGormTransactionScopeCommits(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	products := NewGormProductRepository(db)
	tenantID := uuid.New()

	p := seedProduct(t, products, tenantID, "Rice 5kg", 400, 10)

	err := scope.Execute(ctx, func(ctx context.Context, repos appbilling.TransactionalRepositories) error {
		if err := repos.Products.TryReserveStock(ctx, tenantID, p.ID, 4); err != nil {
			return err
		}
		_, err := repos.Sequences.Next(ctx, tenantID, "20250115")
		return err
	})
	require.NoError(t, err)

	got, err := products.FindByIDForTenant(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Stock)
}
