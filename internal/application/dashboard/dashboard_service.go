package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/catalog"
)

// Stats is the storefront summary shown on the dashboard
type Stats struct {
	TodaySales          string `json:"today_sales"`
	TodayTransactions   int64  `json:"today_transactions"`
	TotalProducts       int64  `json:"total_products"`
	LowStockCount       int64  `json:"low_stock_count"`
	TotalInventoryValue string `json:"total_inventory_value"`
}

// RecentBill is a compact bill summary for the dashboard
type RecentBill struct {
	ID            string    `json:"id"`
	BillNumber    string    `json:"bill_number"`
	Total         string    `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	CustomerName  string    `json:"customer_name,omitempty"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Service aggregates reporting queries for the dashboard
type Service struct {
	products catalog.ProductRepository
	bills    billing.BillRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a dashboard service
func NewService(products catalog.ProductRepository, bills billing.BillRepository, logger *zap.Logger) *Service {
	return &Service{products: products, bills: bills, logger: logger, now: time.Now}
}

// GetStats returns today's sales figures and catalog health for the store.
// "Today" is the server's local calendar day, matching bill numbering.
func (s *Service) GetStats(ctx context.Context, tenantID uuid.UUID) (*Stats, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	todaySales, todayCount, err := s.bills.SumTotalsBetween(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.products.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.products.FindBelowMinimumForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	inventoryValue, err := s.products.SumInventoryValueForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TodaySales:          todaySales.StringFixed(2),
		TodayTransactions:   todayCount,
		TotalProducts:       totalProducts,
		LowStockCount:       int64(len(lowStock)),
		TotalInventoryValue: inventoryValue.StringFixed(2),
	}, nil
}

// GetRecentBills returns the store's newest bills, capped at limit
func (s *Service) GetRecentBills(ctx context.Context, tenantID uuid.UUID, limit int) ([]RecentBill, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	bills, err := s.bills.FindRecentForTenant(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]RecentBill, 0, len(bills))
	for _, bill := range bills {
		out = append(out, RecentBill{
			ID:            bill.ID.String(),
			BillNumber:    bill.BillNumber,
			Total:         bill.Total.StringFixed(2),
			PaymentMethod: string(bill.PaymentMethod),
			CustomerName:  bill.CustomerName,
			ItemCount:     len(bill.Items),
			CreatedAt:     bill.CreatedAt,
		})
	}
	return out, nil
}
