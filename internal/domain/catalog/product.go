package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirana/backend/internal/domain/shared"
)

// DefaultMinStockAlert is the low-stock threshold applied when none is given.
const DefaultMinStockAlert int64 = 10

// DefaultGSTRate is the GST percentage applied when none is given.
var DefaultGSTRate = decimal.NewFromInt(18)

var hundred = decimal.NewFromInt(100)

// Product is a sellable item in a store's catalog. Stock is the on-hand
// quantity; reservations decrement it in place, so Stock never goes
// negative and a committed bill's quantities are already subtracted.
type Product struct {
	shared.TenantAggregateRoot
	Name          string          `gorm:"type:varchar(255);not null"`
	Barcode       string          `gorm:"type:varchar(64);not null;index"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTRate       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Stock         int64           `gorm:"not null;default:0"`
	MinStockAlert int64           `gorm:"not null;default:10"`
	Category      string          `gorm:"type:varchar(128)"`
	ImageBase64   string          `gorm:"type:text"`
}

// TableName specifies the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product in the given store's catalog
func NewProduct(tenantID uuid.UUID, name, barcode string, price, gstRate decimal.Decimal, stock, minStockAlert int64, category, imageBase64 string) (*Product, error) {
	name = strings.TrimSpace(name)
	barcode = strings.TrimSpace(barcode)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "product name is required")
	}
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "barcode is required")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "price must be greater than zero")
	}
	if gstRate.IsNegative() || gstRate.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate must be between 0 and 100")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "stock cannot be negative")
	}
	if minStockAlert <= 0 {
		minStockAlert = DefaultMinStockAlert
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Barcode:             barcode,
		Price:               price,
		GSTRate:             gstRate,
		Stock:               stock,
		MinStockAlert:       minStockAlert,
		Category:            strings.TrimSpace(category),
		ImageBase64:         imageBase64,
	}, nil
}

// Update changes the mutable catalog fields
func (p *Product) Update(name string, price, gstRate decimal.Decimal, minStockAlert int64, category, imageBase64 string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "product name is required")
	}
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "price must be greater than zero")
	}
	if gstRate.IsNegative() || gstRate.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_GST_RATE", "GST rate must be between 0 and 100")
	}
	if minStockAlert <= 0 {
		minStockAlert = DefaultMinStockAlert
	}

	p.Name = name
	p.Price = price
	p.GSTRate = gstRate
	p.MinStockAlert = minStockAlert
	p.Category = strings.TrimSpace(category)
	p.ImageBase64 = imageBase64
	p.IncrementVersion()
	return nil
}

// AdjustStock sets the on-hand quantity to an absolute value
func (p *Product) AdjustStock(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "stock cannot be negative")
	}
	p.Stock = quantity
	p.IncrementVersion()
	return nil
}

// IsLowStock reports whether on-hand stock is at or below the alert threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStockAlert
}

// InventoryValue returns price multiplied by on-hand stock
func (p *Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Stock))
}
