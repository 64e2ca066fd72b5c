//go:build integration

package testdb

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phrazzld/medcards/internal/platform/postgres"
)

// databaseURLEnvVars are checked in order for a test database URL.
var databaseURLEnvVars = []string{"MEDCARDS_TEST_DATABASE_URL", "DATABASE_URL"}

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDatabaseURL returns the first configured test database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range databaseURLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestPool returns a pool connected to the test database with all
// migrations applied. The test is skipped when no database is configured
// and the pool is closed when it finishes.
func GetTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("set MEDCARDS_TEST_DATABASE_URL or DATABASE_URL to run database tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrateOnce.Do(func() {
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		migrateErr = postgres.Migrate(ctx, dbURL, postgres.MigrateUp, quiet)
	})
	if migrateErr != nil {
		t.Fatalf("failed to apply migrations to %s: %v", maskDatabaseURL(dbURL), migrateErr)
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to open pool for %s: %v", maskDatabaseURL(dbURL), err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("failed to ping %s: %v", maskDatabaseURL(dbURL), err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// maskDatabaseURL hides the password of dbURL for log output.
func maskDatabaseURL(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
