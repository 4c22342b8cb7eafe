// internal/storage/database.go
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Driver registration

	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// ConnectDB initializes the connection pool for the SQLite database and
// ensures the required tables ('admins', 'games', 'game_requests') exist.
func ConnectDB(cfg *config.Config) (*sql.DB, error) {
	dbPath := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
	customLog.Printf("Storage: Initializing database: %s", dbPath)

	// Ensure the data directory exists
	if err := os.MkdirAll(cfg.DatabaseDir, 0o750); err != nil {
		customLog.Warnf("Storage: Error creating data directory '%s': %v", cfg.DatabaseDir, err)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// ?_foreign_keys=on enables FK enforcement (cascade from admins to games),
	// WAL + busy timeout keep concurrent request handling from tripping on locks
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		customLog.Warnf("Storage: Failed to open db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Verify connection is working
	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		customLog.Warnf("Storage: Failed to ping db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	customLog.Println("Storage: Database connection successful.")

	// --- Ensure 'admins' table exists ---
	createAdminsTableSQL := `
	CREATE TABLE IF NOT EXISTS admins (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err = db.Exec(createAdminsTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create admins table: %v", err)
		return nil, fmt.Errorf("failed to ensure admins table: %w", err)
	}
	customLog.Println("Storage: Admins table ensured.")

	// --- Ensure 'games' table exists ---
	// The FK cascade is a backstop; admin deletion still removes dependent
	// games in an explicit transaction (see DeleteAdmin).
	createGamesTableSQL := `
	CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		genre TEXT NOT NULL,
		cover_image_url TEXT NOT NULL,
		download_link TEXT NOT NULL,
		downloads INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		admin_id INTEGER NOT NULL,
		FOREIGN KEY (admin_id) REFERENCES admins(id) ON DELETE CASCADE
	);`
	if _, err = db.Exec(createGamesTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create games table: %v", err)
		return nil, fmt.Errorf("failed to ensure games table: %w", err)
	}
	customLog.Println("Storage: Games table ensured.")

	// --- Ensure 'game_requests' table exists ---
	createRequestsTableSQL := `
	CREATE TABLE IF NOT EXISTS game_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_title TEXT NOT NULL,
		user_email TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err = db.Exec(createRequestsTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create game_requests table: %v", err)
		return nil, fmt.Errorf("failed to ensure game_requests table: %w", err)
	}
	customLog.Println("Storage: Game requests table ensured.")

	return db, nil
}
