package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormLogger "gorm.io/gorm/logger"

	"electrotrack/internal/config"
	"electrotrack/internal/infrastructure/database/postgres"
)

// NewDB opens a private in-memory SQLite database with the full schema.
// Row locks are ignored by SQLite, everything else behaves as in PostgreSQL.
func NewDB(t testing.TB) *postgres.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := postgres.Open(sqlite.Open(dsn), gormLogger.Silent, config.DatabaseConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
