package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirana/backend/internal/domain/shared"
)

func TestNewStore(t *testing.T) {
	t.Run("creates store with hashed password", func(t *testing.T) {
		store, err := NewStore("owner@shop.in", "secret123", "Sharma General Store", "Ravi Sharma", "+919812345678", "27aapfu0939f1zv", "sgs")
		require.NoError(t, err)

		assert.Equal(t, "owner@shop.in", store.Email)
		assert.Equal(t, "SGS", store.StoreCode)
		assert.Equal(t, "27AAPFU0939F1ZV", store.GSTNumber)
		assert.NotEqual(t, "secret123", store.PasswordHash)
		assert.True(t, store.Active)
		assert.Equal(t, 1, store.GetVersion())
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		store, err := NewStore("Owner@Shop.IN", "secret123", "Shop", "Owner", "", "", "AB")
		require.NoError(t, err)
		assert.Equal(t, "owner@shop.in", store.Email)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewStore("a@b.c", "short", "Shop", "Owner", "", "", "AB")
		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "INVALID_PASSWORD", derr.Code)
	})

	t.Run("rejects invalid store codes", func(t *testing.T) {
		for _, code := range []string{"A", "ABCDE", "A1", "ab cd", ""} {
			_, err := NewStore("a@b.c", "secret123", "Shop", "Owner", "", "", code)
			assert.Error(t, err, "code %q should be rejected", code)
		}
	})

	t.Run("rejects missing email", func(t *testing.T) {
		_, err := NewStore("not-an-email", "secret123", "Shop", "Owner", "", "", "AB")
		assert.Error(t, err)
	})
}

func TestStoreCheckPassword(t *testing.T) {
	store, err := NewStore("a@b.c", "secret123", "Shop", "Owner", "", "", "AB")
	require.NoError(t, err)

	assert.True(t, store.CheckPassword("secret123"))
	assert.False(t, store.CheckPassword("wrong"))
}

func TestStoreChangePassword(t *testing.T) {
	store, err := NewStore("a@b.c", "secret123", "Shop", "Owner", "", "", "AB")
	require.NoError(t, err)

	require.NoError(t, store.ChangePassword("newsecret"))
	assert.True(t, store.CheckPassword("newsecret"))
	assert.False(t, store.CheckPassword("secret123"))
	assert.Equal(t, 2, store.GetVersion())

	assert.Error(t, store.ChangePassword("nope"))
}

func TestStoreUpdateProfile(t *testing.T) {
	store, err := NewStore("a@b.c", "secret123", "Shop", "Owner", "", "", "AB")
	require.NoError(t, err)

	require.NoError(t, store.UpdateProfile("New Shop", "New Owner", "+911234567890", "29zzzzz9999z9z9"))
	assert.Equal(t, "New Shop", store.StoreName)
	assert.Equal(t, "29ZZZZZ9999Z9Z9", store.GSTNumber)

	assert.Error(t, store.UpdateProfile("", "Owner", "", ""))
}
