package db

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/craftassist/internal/testutil"
)

// setupTestDB returns a pool on a fresh migrated database.
func setupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	return testutil.SetupTestDB(tb)
}
