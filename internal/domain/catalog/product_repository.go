package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirana/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products. All reads
// and writes are scoped to a tenant; a product owned by another tenant is
// reported as not found.
//
// TryReserveStock and ReleaseStock are the stock ledger: TryReserveStock
// atomically decrements on-hand stock only when enough remains, so two
// concurrent reservations can never oversell, and ReleaseStock returns a
// prior reservation when a later step of the same sale fails.
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByBarcodeForTenant(ctx context.Context, tenantID uuid.UUID, barcode string) (*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Product, int64, error)
	FindBelowMinimumForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Product, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	SumInventoryValueForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, product *Product) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// TryReserveStock decrements stock by quantity if at least quantity
	// remains. Returns shared.ErrNotFound if the product does not exist for
	// the tenant, or an INSUFFICIENT_STOCK error carrying the available
	// quantity when stock is too low.
	TryReserveStock(ctx context.Context, tenantID, id uuid.UUID, quantity int64) error

	// ReleaseStock returns a previously reserved quantity to stock.
	ReleaseStock(ctx context.Context, tenantID, id uuid.UUID, quantity int64) error
}
