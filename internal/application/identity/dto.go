package identity

import (
	"time"

	"github.com/kirana/backend/internal/domain/identity"
)

// SignupRequest is the payload for registering a new store
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	StoreName string `json:"store_name" binding:"required"`
	OwnerName string `json:"owner_name" binding:"required"`
	Phone     string `json:"phone"`
	GSTNumber string `json:"gst_number"`
	StoreCode string `json:"store_code" binding:"required,min=2,max=4"`
}

// LoginRequest is the payload for authenticating
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// StoreResponse is the store profile as returned to clients
type StoreResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	StoreName string    `json:"store_name"`
	OwnerName string    `json:"owner_name"`
	Phone     string    `json:"phone,omitempty"`
	GSTNumber string    `json:"gst_number,omitempty"`
	StoreCode string    `json:"store_code"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned from signup and login
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Store     StoreResponse `json:"store"`
}

func toStoreResponse(store *identity.Store) StoreResponse {
	return StoreResponse{
		ID:        store.ID.String(),
		Email:     store.Email,
		StoreName: store.StoreName,
		OwnerName: store.OwnerName,
		Phone:     store.Phone,
		GSTNumber: store.GSTNumber,
		StoreCode: store.StoreCode,
		CreatedAt: store.CreatedAt,
	}
}
