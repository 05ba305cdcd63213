package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kirana/backend/internal/domain/identity"
	"github.com/kirana/backend/internal/domain/shared"
)

// GormStoreRepository implements identity.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a GORM-backed store repository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID retrieves a store by ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Store, error) {
	var store identity.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindByEmail retrieves a store by its owner's email
func (r *GormStoreRepository) FindByEmail(ctx context.Context, email string) (*identity.Store, error) {
	var store identity.Store
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindByStoreCode retrieves a store by its billing code
func (r *GormStoreRepository) FindByStoreCode(ctx context.Context, code string) (*identity.Store, error) {
	var store identity.Store
	err := r.db.WithContext(ctx).Where("store_code = ?", code).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// ExistsByEmail checks whether any store uses the email
func (r *GormStoreRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Store{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByStoreCode checks whether any store uses the code
func (r *GormStoreRepository) ExistsByStoreCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Store{}).Where("store_code = ?", code).Count(&count).Error
	return count > 0, err
}

// Save persists a store
func (r *GormStoreRepository) Save(ctx context.Context, store *identity.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}
