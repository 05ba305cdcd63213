package catalog

import (
	"time"

	"github.com/kirana/backend/internal/domain/catalog"
	"github.com/kirana/backend/internal/domain/shared"
)

// CreateProductRequest is the payload for adding a catalog item
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Barcode       string  `json:"barcode" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	GSTRate       *float64 `json:"gst_rate"`
	Stock         int64   `json:"stock" binding:"gte=0"`
	MinStockAlert int64   `json:"min_stock_alert"`
	Category      string  `json:"category"`
	ImageBase64   string  `json:"image_base64"`
}

// UpdateProductRequest is the payload for editing a catalog item
type UpdateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	GSTRate       float64 `json:"gst_rate" binding:"gte=0,lte=100"`
	MinStockAlert int64   `json:"min_stock_alert"`
	Category      string  `json:"category"`
	ImageBase64   string  `json:"image_base64"`
}

// AdjustStockRequest sets a product's on-hand stock to an absolute value
type AdjustStockRequest struct {
	Stock int64 `json:"stock" binding:"gte=0"`
}

// ProductResponse is a product as returned to clients
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Barcode       string    `json:"barcode"`
	Price         string    `json:"price"`
	GSTRate       string    `json:"gst_rate"`
	Stock         int64     `json:"stock"`
	MinStockAlert int64     `json:"min_stock_alert"`
	Category      string    `json:"category,omitempty"`
	ImageBase64   string    `json:"image_base64,omitempty"`
	LowStock      bool      `json:"low_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse is a paginated list of products
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ListProductsQuery holds list parameters for product queries
type ListProductsQuery struct {
	Page     int
	PageSize int
	Search   string
}

// Filter converts the query to a repository filter with bounded paging
func (q ListProductsQuery) Filter() shared.Filter {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = 50
	}
	if size > 200 {
		size = 200
	}
	return shared.Filter{Page: page, PageSize: size, Search: q.Search, OrderBy: "name", OrderDir: "asc"}
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Barcode:       p.Barcode,
		Price:         p.Price.StringFixed(2),
		GSTRate:       p.GSTRate.StringFixed(2),
		Stock:         p.Stock,
		MinStockAlert: p.MinStockAlert,
		Category:      p.Category,
		ImageBase64:   p.ImageBase64,
		LowStock:      p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
