package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kirana/backend/internal/domain/billing"
	"github.com/kirana/backend/internal/domain/catalog"
	"github.com/kirana/backend/internal/domain/identity"
)

// newTestDB opens an in-memory SQLite database with the full schema. The
// pool is pinned to one connection so concurrent test goroutines queue
// instead of fighting over SQLite's single writer.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&identity.Store{},
		&catalog.Product{},
		&billing.Bill{},
		&billing.BillItem{},
		&billing.BillSequence{},
		&billing.SalesLogEntry{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
