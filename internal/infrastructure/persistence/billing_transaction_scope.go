package persistence

import (
	"context"

	"gorm.io/gorm"

	appbilling "github.com/kirana/backend/internal/application/billing"
)

// GormTransactionScope implements the billing transaction scope on a GORM
// transaction. Repositories handed to fn are bound to the transaction, so
// stock reservation, number allocation and the bill insert commit or roll
// back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a transaction scope over the database
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := appbilling.TransactionalRepositories{
			Products:  NewGormProductRepository(tx),
			Bills:     NewGormBillRepository(tx),
			Sequences: NewGormBillSequenceRepository(tx),
		}
		return fn(ctx, repos)
	})
}
