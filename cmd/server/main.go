// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/arcaload/arcaload-backend/api"
	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/auth"
	"github.com/arcaload/arcaload-backend/internal/logger"
	"github.com/arcaload/arcaload-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	customLog.Println("Starting Arcaload backend server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// 2. Initialize Database Connection
	db, err := storage.ConnectDB(cfg)
	if err != nil {
		customLog.Fatalf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	defer func() {
		customLog.Println("Closing database connection...")
		if err := db.Close(); err != nil {
			customLog.Printf("Error closing database: %v", err)
		}
	}()

	// 3. Seed the default admin on first start
	if err := seedDefaultAdmin(context.Background(), db, cfg); err != nil {
		customLog.Fatalf("Failed to seed default admin: %v", err)
		os.Exit(1)
	}

	// 4. Setup Router (passing dependencies)
	router := api.SetupRouter(db, cfg)

	// 5. Start Server
	customLog.Printf("Server listening on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		customLog.Fatalf("Failed to start server: %v", err)
	}
}

// seedDefaultAdmin creates the configured admin account if no admin
// exists yet, so a fresh install is immediately usable.
func seedDefaultAdmin(ctx context.Context, db *sql.DB, cfg *config.Config) error {
	count, err := storage.CountAdmins(ctx, db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	adminID, err := storage.CreateAdmin(ctx, db, cfg.AdminUsername, cfg.AdminEmail, passwordHash)
	if err != nil {
		return err
	}

	customLog.Printf("Default admin '%s' created (id %d)", cfg.AdminUsername, adminID)
	return nil
}
