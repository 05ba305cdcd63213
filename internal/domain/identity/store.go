package identity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirana/backend/internal/domain/shared"
)

const bcryptCost = 12

var storeCodePattern = regexp.MustCompile(`^[A-Z]{2,4}$`)

// Store is the tenant aggregate. Each store is an independent tenant:
// one owner account, one store code, and a fully isolated catalog and
// billing history keyed by the store's ID.
type Store struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	StoreName    string `gorm:"type:varchar(255);not null"`
	OwnerName    string `gorm:"type:varchar(255);not null"`
	Phone        string `gorm:"type:varchar(32);not null"`
	GSTNumber    string `gorm:"type:varchar(32)"`
	StoreCode    string `gorm:"type:varchar(8);not null;uniqueIndex"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName specifies the database table name
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store with a hashed password. The store code is
// the short uppercase prefix used on every bill number this store issues.
func NewStore(email, password, storeName, ownerName, phone, gstNumber, storeCode string) (*Store, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	storeCode = strings.ToUpper(strings.TrimSpace(storeCode))

	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "a valid email address is required")
	}
	if len(password) < 6 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "password must be at least 6 characters")
	}
	if strings.TrimSpace(storeName) == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "store name is required")
	}
	if strings.TrimSpace(ownerName) == "" {
		return nil, shared.NewDomainError("INVALID_OWNER_NAME", "owner name is required")
	}
	if !storeCodePattern.MatchString(storeCode) {
		return nil, shared.NewDomainError("INVALID_STORE_CODE", "store code must be 2-4 uppercase letters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      string(hash),
		StoreName:         strings.TrimSpace(storeName),
		OwnerName:         strings.TrimSpace(ownerName),
		Phone:             strings.TrimSpace(phone),
		GSTNumber:         strings.ToUpper(strings.TrimSpace(gstNumber)),
		StoreCode:         storeCode,
		Active:            true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (s *Store) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
}

// ChangePassword updates the password hash after validating the new password
func (s *Store) ChangePassword(newPassword string) error {
	if len(newPassword) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hash)
	s.IncrementVersion()
	return nil
}

// UpdateProfile updates the mutable profile fields
func (s *Store) UpdateProfile(storeName, ownerName, phone, gstNumber string) error {
	if strings.TrimSpace(storeName) == "" {
		return shared.NewDomainError("INVALID_STORE_NAME", "store name is required")
	}
	if strings.TrimSpace(ownerName) == "" {
		return shared.NewDomainError("INVALID_OWNER_NAME", "owner name is required")
	}
	s.StoreName = strings.TrimSpace(storeName)
	s.OwnerName = strings.TrimSpace(ownerName)
	s.Phone = strings.TrimSpace(phone)
	s.GSTNumber = strings.ToUpper(strings.TrimSpace(gstNumber))
	s.IncrementVersion()
	return nil
}

// Deactivate disables the store account
func (s *Store) Deactivate() {
	s.Active = false
	s.IncrementVersion()
}

// TenantID returns the store's ID; the store is its own tenant.
func (s *Store) TenantID() uuid.UUID {
	return s.ID
}
