package billing

import (
	"time"

	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/shared"
)

// CreateBillItemRequest is one requested line. Only the product and
// quantity come from the client; prices are resolved server-side.
type CreateBillItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// CreateBillRequest is the payload for committing a sale
type CreateBillRequest struct {
	Items          []CreateBillItemRequest `json:"items" binding:"required"`
	PaymentMethod  string                  `json:"payment_method" binding:"required"`
	CustomerName   string                  `json:"customer_name"`
	IdempotencyKey string                  `json:"-"`
}

// BillItemResponse is one line of a bill as returned to clients
type BillItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Barcode     string `json:"barcode"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	GSTRate     string `json:"gst_rate"`
	Subtotal    string `json:"subtotal"`
	GSTAmount   string `json:"gst_amount"`
}

// BillResponse is a bill as returned to clients
type BillResponse struct {
	ID            string             `json:"id"`
	BillNumber    string             `json:"bill_number"`
	Items         []BillItemResponse `json:"items"`
	Subtotal      string             `json:"subtotal"`
	GSTAmount     string             `json:"gst_amount"`
	Total         string             `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// BillListResponse is a paginated list of bills
type BillListResponse struct {
	Bills    []BillResponse `json:"bills"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ListBillsQuery holds list parameters for bill queries
type ListBillsQuery struct {
	Page     int
	PageSize int
}

// Filter converts the query to a repository filter with bounded paging
func (q ListBillsQuery) Filter() shared.Filter {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return shared.Filter{Page: page, PageSize: size, OrderBy: "created_at", OrderDir: "desc"}
}

// SalesHistoryEntryResponse is one sold line item from the reporting log
type SalesHistoryEntryResponse struct {
	BillID      string    `json:"bill_id"`
	BillNumber  string    `json:"bill_number"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	LineTotal   string    `json:"line_total"`
	SoldAt      time.Time `json:"sold_at"`
}

// SalesHistoryResponse is a paginated slice of the sales log
type SalesHistoryResponse struct {
	Entries  []SalesHistoryEntryResponse `json:"entries"`
	Total    int64                       `json:"total"`
	Page     int                         `json:"page"`
	PageSize int                         `json:"page_size"`
}

func toBillResponse(bill *billing.Bill) BillResponse {
	items := make([]BillItemResponse, 0, len(bill.Items))
	for _, item := range bill.Items {
		items = append(items, BillItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Barcode:     item.Barcode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			GSTRate:     item.GSTRate.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
			GSTAmount:   item.GSTAmount.StringFixed(2),
		})
	}
	return BillResponse{
		ID:            bill.ID.String(),
		BillNumber:    bill.BillNumber,
		Items:         items,
		Subtotal:      bill.Subtotal.StringFixed(2),
		GSTAmount:     bill.GSTAmount.StringFixed(2),
		Total:         bill.Total.StringFixed(2),
		PaymentMethod: string(bill.PaymentMethod),
		CustomerName:  bill.CustomerName,
		CreatedAt:     bill.CreatedAt,
	}
}
