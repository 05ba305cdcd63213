package identity

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepository defines persistence operations for stores
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindByEmail(ctx context.Context, email string) (*Store, error)
	FindByStoreCode(ctx context.Context, code string) (*Store, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStoreCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, store *Store) error
}
