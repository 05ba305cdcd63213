package billing

import (
	"context"

	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/catalog"
)

// TransactionalRepositories bundles the repositories a bill commit needs,
// all bound to the same database transaction.
type TransactionalRepositories struct {
	Products  catalog.ProductRepository
	Bills     billing.BillRepository
	Sequences billing.BillSequenceRepository
}

// TransactionScope runs a function inside a database transaction. If fn
// returns an error the transaction rolls back and nothing it did is
// visible; otherwise everything commits together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs fn against fixed repositories with no
// transaction semantics. Used in tests, where the compensation path has
// to undo partial work itself.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error {
	return fn(ctx, s.Repos)
}
