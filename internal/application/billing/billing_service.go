package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/shared"
	"github.com/kirana/backend/internal/infrastructure/cache"
)

const (
	// maxCommitAttempts bounds retries when a bill number collides with a
	// concurrent writer.
	maxCommitAttempts = 3

	idempotencyTTL = 24 * time.Hour
)

// Service coordinates bill creation and reads.
//
// A sale commits in one transaction: resolve products, price the bill,
// reserve stock, allocate the bill number, persist the bill. If any step
// fails everything unwinds and stock is untouched. The sales history entry
// is appended after commit, best effort.
type Service struct {
	scope       TransactionScope
	salesLog    billing.SalesLogRepository
	idempotency cache.IdempotencyStore
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a billing service
func NewService(scope TransactionScope, salesLog billing.SalesLogRepository, idempotency cache.IdempotencyStore, logger *zap.Logger) *Service {
	return &Service{
		scope:       scope,
		salesLog:    salesLog,
		idempotency: idempotency,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateBill commits a sale for the given store and returns the persisted
// bill. Quantities come from the request; prices, names and tax rates come
// from the catalog at commit time.
func (s *Service) CreateBill(ctx context.Context, tenantID uuid.UUID, storeCode string, req CreateBillRequest) (*BillResponse, error) {
	paymentMethod, err := billing.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_BILL", "a bill must contain at least one item")
	}

	type requestedItem struct {
		productID uuid.UUID
		quantity  int64
	}
	requested := make([]requestedItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "product_id must be a valid UUID")
		}
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "quantity must be greater than zero")
		}
		requested = append(requested, requestedItem{productID: productID, quantity: item.Quantity})
	}

	if req.IdempotencyKey != "" {
		ok, err := s.idempotency.Reserve(ctx, tenantID.String()+":"+req.IdempotencyKey, idempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "a bill with this idempotency key was already submitted")
		}
	}

	var bill *billing.Bill
	commitErr := errors.New("bill commit not attempted")
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		commitErr = s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
			lines := make([]billing.LinePricing, 0, len(requested))
			for _, item := range requested {
				product, err := repos.Products.FindByIDForTenant(ctx, tenantID, item.productID)
				if err != nil {
					return err
				}
				lines = append(lines, billing.LinePricing{
					ProductID:   product.ID,
					ProductName: product.Name,
					Barcode:     product.Barcode,
					Quantity:    item.quantity,
					UnitPrice:   product.Price,
					GSTRate:     product.GSTRate,
				})
			}

			draft, err := billing.Compose(lines)
			if err != nil {
				return err
			}

			// Reserve stock line by line. On failure, return what was
			// already taken; under a real transaction the rollback covers
			// this, but the release keeps non-transactional scopes correct.
			reserved := make([]requestedItem, 0, len(requested))
			release := func() {
				for _, r := range reserved {
					if err := repos.Products.ReleaseStock(ctx, tenantID, r.productID, r.quantity); err != nil {
						s.logger.Error("failed to release reserved stock",
							zap.String("tenant_id", tenantID.String()),
							zap.String("product_id", r.productID.String()),
							zap.Int64("quantity", r.quantity),
							zap.Error(err))
					}
				}
			}
			for _, item := range requested {
				if err := repos.Products.TryReserveStock(ctx, tenantID, item.productID, item.quantity); err != nil {
					release()
					return err
				}
				reserved = append(reserved, item)
			}

			day := billing.Day(s.now())
			seq, err := repos.Sequences.Next(ctx, tenantID, day)
			if err != nil {
				release()
				return err
			}

			bill = billing.NewBill(tenantID, billing.FormatBillNumber(storeCode, day, seq), draft, paymentMethod, req.CustomerName)
			if err := repos.Bills.Save(ctx, bill); err != nil {
				release()
				return err
			}
			return nil
		})

		if commitErr == nil || !errors.Is(commitErr, shared.ErrConcurrencyConflict) {
			break
		}
		s.logger.Warn("bill commit conflicted, retrying",
			zap.String("tenant_id", tenantID.String()),
			zap.Int("attempt", attempt+1))
	}

	if commitErr != nil {
		if req.IdempotencyKey != "" {
			if err := s.idempotency.Release(ctx, tenantID.String()+":"+req.IdempotencyKey); err != nil {
				s.logger.Error("failed to release idempotency key", zap.Error(err))
			}
		}
		return nil, commitErr
	}

	s.appendSalesLog(ctx, bill)

	resp := toBillResponse(bill)
	return &resp, nil
}

// appendSalesLog records one entry per sold line item for reporting. The
// bill is already committed, so failures here are logged and swallowed.
func (s *Service) appendSalesLog(ctx context.Context, bill *billing.Bill) {
	for _, entry := range billing.NewSalesLogEntries(bill) {
		if err := s.salesLog.Append(ctx, entry); err != nil {
			s.logger.Error("failed to append sales log entry",
				zap.String("tenant_id", bill.TenantID.String()),
				zap.String("bill_number", bill.BillNumber),
				zap.String("product_id", entry.ProductID.String()),
				zap.Error(err))
		}
	}
}

// ListSalesHistory returns a page of the reporting log, newest sale first.
// Entries may lag bills briefly since the log is written best-effort.
func (s *Service) ListSalesHistory(ctx context.Context, tenantID uuid.UUID, query ListBillsQuery) (*SalesHistoryResponse, error) {
	filter := query.Filter()
	entries, total, err := s.salesLog.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	resp := &SalesHistoryResponse{
		Entries:  make([]SalesHistoryEntryResponse, 0, len(entries)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, SalesHistoryEntryResponse{
			BillID:      entry.BillID.String(),
			BillNumber:  entry.BillNumber,
			ProductID:   entry.ProductID.String(),
			ProductName: entry.ProductName,
			Quantity:    entry.Quantity,
			UnitPrice:   entry.UnitPrice.StringFixed(2),
			LineTotal:   entry.LineTotal.StringFixed(2),
			SoldAt:      entry.SoldAt,
		})
	}
	return resp, nil
}

// GetBill returns a single bill for the tenant
func (s *Service) GetBill(ctx context.Context, tenantID, billID uuid.UUID) (*BillResponse, error) {
	var resp BillResponse
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		bill, err := repos.Bills.FindByIDForTenant(ctx, tenantID, billID)
		if err != nil {
			return err
		}
		resp = toBillResponse(bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBills returns a page of the tenant's bills, newest first
func (s *Service) ListBills(ctx context.Context, tenantID uuid.UUID, query ListBillsQuery) (*BillListResponse, error) {
	filter := query.Filter()
	var resp BillListResponse
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		bills, total, err := repos.Bills.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		resp = BillListResponse{
			Bills:    make([]BillResponse, 0, len(bills)),
			Total:    total,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		}
		for _, bill := range bills {
			resp.Bills = append(resp.Bills, toBillResponse(bill))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
