package database

import (
	"context"
	"os"
	"testing"
	"time"
)

// SetupTestDB connects to TEST_DATABASE_URL, skipping the test when it is not set
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDBFromURL(ctx, url)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}

// ApplySchema creates the games table used by integration tests
func ApplySchema(ctx context.Context, db *DB) error {
	_, err := db.pool.Exec(ctx, GamesSchema)
	return err
}
