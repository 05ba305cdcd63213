package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kirana/backend/internal/domain/catalog"
	"github.com/kirana/backend/internal/domain/shared"
)

// ProductService handles catalog management for a store
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a product service
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

// CreateProduct adds a product to the store's catalog. Barcodes are
// unique per store.
func (s *ProductService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.products.FindByBarcodeForTenant(ctx, tenantID, req.Barcode)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("BARCODE_TAKEN", "a product with this barcode already exists")
	}

	gstRate := catalog.DefaultGSTRate
	if req.GSTRate != nil {
		gstRate = decimal.NewFromFloat(*req.GSTRate)
	}

	product, err := catalog.NewProduct(tenantID, req.Name, req.Barcode,
		decimal.NewFromFloat(req.Price), gstRate, req.Stock, req.MinStockAlert, req.Category, req.ImageBase64)
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("barcode", product.Barcode))

	resp := toProductResponse(product)
	return &resp, nil
}

// UpdateProduct edits a product's catalog fields. Stock is adjusted
// separately.
func (s *ProductService) UpdateProduct(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, decimal.NewFromFloat(req.Price), decimal.NewFromFloat(req.GSTRate),
		req.MinStockAlert, req.Category, req.ImageBase64); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := toProductResponse(product)
	return &resp, nil
}

// AdjustStock sets a product's on-hand quantity to an absolute value
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(req.Stock); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := toProductResponse(product)
	return &resp, nil
}

// GetProduct returns a single product for the tenant
func (s *ProductService) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetProductByBarcode looks up a product by barcode, the common path at
// the till.
func (s *ProductService) GetProductByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) (*ProductResponse, error) {
	product, err := s.products.FindByBarcodeForTenant(ctx, tenantID, barcode)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// ListProducts returns a page of the store's catalog
func (s *ProductService) ListProducts(ctx context.Context, tenantID uuid.UUID, query ListProductsQuery) (*ProductListResponse, error) {
	filter := query.Filter()
	products, total, err := s.products.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	resp := &ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}
	return resp, nil
}

// ListLowStock returns products below their alert threshold
func (s *ProductService) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.products.FindBelowMinimumForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// DeleteProduct removes a product from the catalog. Past bills keep
// their snapshotted product details.
func (s *ProductService) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	return s.products.DeleteForTenant(ctx, tenantID, productID)
}
