package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kirana/backend/internal/domain/identity"
	"github.com/kirana/backend/internal/domain/shared"
	"github.com/kirana/backend/internal/infrastructure/auth"
)

// AuthService handles store registration and authentication
type AuthService struct {
	stores identity.StoreRepository
	jwt    *auth.JWTService
	logger *zap.Logger
}

// NewAuthService creates an auth service
func NewAuthService(stores identity.StoreRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{stores: stores, jwt: jwt, logger: logger}
}

// Signup registers a new store and returns a token for it. Email and
// store code must both be unused.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	storeCode := strings.ToUpper(strings.TrimSpace(req.StoreCode))

	exists, err := s.stores.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "a store with this email already exists")
	}

	exists, err = s.stores.ExistsByStoreCode(ctx, storeCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("STORE_CODE_TAKEN", "this store code is already in use")
	}

	store, err := identity.NewStore(req.Email, req.Password, req.StoreName, req.OwnerName, req.Phone, req.GSTNumber, req.StoreCode)
	if err != nil {
		return nil, err
	}

	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Info("store registered",
		zap.String("store_id", store.ID.String()),
		zap.String("store_code", store.StoreCode))

	return s.issueToken(store)
}

// Login authenticates a store owner by email and password. Unknown email
// and wrong password both return the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	store, err := s.stores.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
		}
		return nil, err
	}

	if !store.Active {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	}
	if !store.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	}

	return s.issueToken(store)
}

// GetProfile returns the store profile for an authenticated store
func (s *AuthService) GetProfile(ctx context.Context, storeID uuid.UUID) (*StoreResponse, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	resp := toStoreResponse(store)
	return &resp, nil
}

func (s *AuthService) issueToken(store *identity.Store) (*AuthResponse, error) {
	token, expiresAt, err := s.jwt.GenerateToken(store.ID, store.StoreCode, store.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Store:     toStoreResponse(store),
	}, nil
}
