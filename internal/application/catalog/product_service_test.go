package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirana/backend/internal/domain/catalog"
	"github.com/kirana/backend/internal/domain/shared"
	"github.com/kirana/backend/internal/infrastructure/logger"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByBarcodeForTenant(_ context.Context, tenantID uuid.UUID, barcode string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.TenantID == tenantID && p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]*catalog.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) FindBelowMinimumForTenant(_ context.Context, tenantID uuid.UUID) ([]*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID && p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	_, n, err := r.FindAllForTenant(ctx, tenantID, shared.Filter{})
	return n, err
}

func (r *fakeProductRepo) SumInventoryValueForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	products, _, err := r.FindAllForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.InventoryValue())
	}
	return sum, nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) TryReserveStock(_ context.Context, tenantID, id uuid.UUID, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return shared.ErrNotFound
	}
	if p.Stock < quantity {
		return shared.NewInsufficientStockError(p.Name, p.Stock, quantity)
	}
	p.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) ReleaseStock(_ context.Context, tenantID, id uuid.UUID, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return shared.ErrNotFound
	}
	p.Stock += quantity
	return nil
}

func newProductFixture(t *testing.T) (*ProductService, uuid.UUID) {
	t.Helper()
	return NewProductService(newFakeProductRepo(), logger.NewNop()), uuid.New()
}

func validProduct() CreateProductRequest {
	return CreateProductRequest{
		Name:    "Parle-G 100g",
		Barcode: "8901063010116",
		Price:   10.00,
		Stock:   50,
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with defaults", func(t *testing.T) {
		svc, tenantID := newProductFixture(t)

		resp, err := svc.CreateProduct(ctx, tenantID, validProduct())
		require.NoError(t, err)
		assert.Equal(t, "10.00", resp.Price)
		assert.Equal(t, "18.00", resp.GSTRate)
		assert.Equal(t, int64(10), resp.MinStockAlert)
		assert.False(t, resp.LowStock)
	})

	t.Run("rejects duplicate barcode in the same store", func(t *testing.T) {
		svc, tenantID := newProductFixture(t)
		_, err := svc.CreateProduct(ctx, tenantID, validProduct())
		require.NoError(t, err)

		_, err = svc.CreateProduct(ctx, tenantID, validProduct())
		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "BARCODE_TAKEN", derr.Code)
	})

	t.Run("allows the same barcode in different stores", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewProductService(repo, logger.NewNop())

		_, err := svc.CreateProduct(ctx, uuid.New(), validProduct())
		require.NoError(t, err)
		_, err = svc.CreateProduct(ctx, uuid.New(), validProduct())
		assert.NoError(t, err)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc, tenantID := newProductFixture(t)
	created, err := svc.CreateProduct(ctx, tenantID, validProduct())
	require.NoError(t, err)
	productID := uuid.MustParse(created.ID)

	resp, err := svc.UpdateProduct(ctx, tenantID, productID, UpdateProductRequest{
		Name:          "Parle-G 200g",
		Price:         18.00,
		GSTRate:       18,
		MinStockAlert: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Parle-G 200g", resp.Name)
	assert.Equal(t, "18.00", resp.Price)
	assert.Equal(t, int64(50), resp.Stock, "update must not touch stock")

	_, err = svc.UpdateProduct(ctx, uuid.New(), productID, UpdateProductRequest{Name: "X", Price: 1, GSTRate: 0})
	assert.ErrorIs(t, err, shared.ErrNotFound, "cross-tenant update must look like a missing product")
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()
	svc, tenantID := newProductFixture(t)
	created, err := svc.CreateProduct(ctx, tenantID, validProduct())
	require.NoError(t, err)
	productID := uuid.MustParse(created.ID)

	resp, err := svc.AdjustStock(ctx, tenantID, productID, AdjustStockRequest{Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Stock)
	assert.True(t, resp.LowStock)
}

func TestGetProductByBarcode(t *testing.T) {
	ctx := context.Background()
	svc, tenantID := newProductFixture(t)
	_, err := svc.CreateProduct(ctx, tenantID, validProduct())
	require.NoError(t, err)

	resp, err := svc.GetProductByBarcode(ctx, tenantID, "8901063010116")
	require.NoError(t, err)
	assert.Equal(t, "Parle-G 100g", resp.Name)

	_, err = svc.GetProductByBarcode(ctx, tenantID, "unknown")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListLowStock(t *testing.T) {
	ctx := context.Background()
	svc, tenantID := newProductFixture(t)

	low := validProduct()
	low.Stock = 2
	_, err := svc.CreateProduct(ctx, tenantID, low)
	require.NoError(t, err)

	fine := validProduct()
	fine.Barcode = "other"
	fine.Stock = 100
	_, err = svc.CreateProduct(ctx, tenantID, fine)
	require.NoError(t, err)

	out, err := svc.ListLowStock(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].Stock)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc, tenantID := newProductFixture(t)
	created, err := svc.CreateProduct(ctx, tenantID, validProduct())
	require.NoError(t, err)
	productID := uuid.MustParse(created.ID)

	require.NoError(t, svc.DeleteProduct(ctx, tenantID, productID))
	_, err = svc.GetProduct(ctx, tenantID, productID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
