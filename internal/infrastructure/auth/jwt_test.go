package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirana/backend/internal/infrastructure/config"
)

func newTestService(ttl time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret",
		TTL:    ttl,
		Issuer: "test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)
	storeID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(storeID, "SGS", "owner@shop.in")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, storeID, claims.StoreID)
	assert.Equal(t, "SGS", claims.StoreCode)
	assert.Equal(t, "owner@shop.in", claims.Email)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, _, err := svc.GenerateToken(uuid.New(), "SGS", "owner@shop.in")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTamperedToken(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{Secret: "other-secret", TTL: time.Hour, Issuer: "test"})

	token, _, err := other.GenerateToken(uuid.New(), "SGS", "owner@shop.in")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
