// internal/storage/storage_test.go
package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/domain"
	"github.com/arcaload/arcaload-backend/internal/storage"
)

// testDB creates a temporary SQLite DB with the full schema applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseDir:   t.TempDir(),
		DatabaseFile:  "test_storage.db",
		JWTExpiration: time.Minute,
	}
	db, err := storage.ConnectDB(cfg)
	require.NoError(t, err, "connecting test database should not fail")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})
	return db
}

func mustCreateAdmin(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	adminID, err := storage.CreateAdmin(context.Background(), db, username, username+"@example.com", "not-a-real-hash")
	require.NoError(t, err)
	return adminID
}

func mustCreateGame(t *testing.T, db *sql.DB, adminID int64, title string) *domain.Game {
	t.Helper()

	game, err := storage.CreateGame(context.Background(), db, &domain.Game{
		Title:         title,
		Description:   "Description of " + title,
		Genre:         "Adventure",
		CoverImageURL: "https://img.example.com/" + title + ".png",
		DownloadLink:  "https://dl.example.com/" + title + ".zip",
		AdminID:       adminID,
	})
	require.NoError(t, err)
	return game
}
