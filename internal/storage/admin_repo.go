// internal/storage/admin_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/arcaload/arcaload-backend/internal/domain"
)

// Specific errors for admin operations
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CreateAdmin inserts a new admin account and returns its ID.
func CreateAdmin(ctx context.Context, db *sql.DB, username, email, passwordHash string) (int64, error) {
	sqlStatement := `INSERT INTO admins (username, email, password_hash) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, sqlStatement, username, email, passwordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			if strings.Contains(sqliteErr.Error(), "admins.username") {
				return 0, ErrUsernameExists
			}
			if strings.Contains(sqliteErr.Error(), "admins.email") {
				return 0, ErrEmailExists
			}
		}
		customLog.Warnf("Storage: Failed to insert admin %s: %v", username, err)
		return 0, fmt.Errorf("database error during admin creation: %w", err)
	}
	adminID, err := result.LastInsertId()
	if err != nil {
		customLog.Warnf("Storage: Failed to get last insert ID for admin %s: %v", username, err)
		return 0, fmt.Errorf("failed to retrieve admin ID after creation: %w", err)
	}
	return adminID, nil
}

// FindAdminByUsername retrieves an admin by exact username match.
func FindAdminByUsername(ctx context.Context, db *sql.DB, username string) (*domain.Admin, error) {
	sqlStatement := `SELECT id, username, email, password_hash, created_at FROM admins WHERE username = ? LIMIT 1`
	row := db.QueryRowContext(ctx, sqlStatement, username)

	var admin domain.Admin
	err := row.Scan(&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		customLog.Warnf("Storage: Failed to find admin by username %s: %v", username, err)
		return nil, fmt.Errorf("database error finding admin: %w", err)
	}
	return &admin, nil
}

// FindAdminByID retrieves an admin by ID.
func FindAdminByID(ctx context.Context, db *sql.DB, adminID int64) (*domain.Admin, error) {
	sqlStatement := `SELECT id, username, email, password_hash, created_at FROM admins WHERE id = ? LIMIT 1`
	row := db.QueryRowContext(ctx, sqlStatement, adminID)

	var admin domain.Admin
	err := row.Scan(&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		customLog.Warnf("Storage: Failed to find admin by ID %d: %v", adminID, err)
		return nil, fmt.Errorf("database error finding admin: %w", err)
	}
	return &admin, nil
}

// CountAdmins returns the number of admin accounts. Used by the startup
// seed step to decide whether a default admin is needed.
func CountAdmins(ctx context.Context, db *sql.DB) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	if err != nil {
		customLog.Warnf("Storage: Failed to count admins: %v", err)
		return 0, fmt.Errorf("database error counting admins: %w", err)
	}
	return count, nil
}

// DeleteAdmin removes an admin and all games it owns in one transaction.
// The schema's ON DELETE CASCADE would cover the games too, but the
// dependent delete is explicit so the cascade is visible and testable.
func DeleteAdmin(ctx context.Context, db *sql.DB, adminID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		customLog.Warnf("Storage: Failed to begin admin delete transaction: %v", err)
		return fmt.Errorf("database error deleting admin: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE admin_id = ?`, adminID); err != nil {
		customLog.Warnf("Storage: Failed to delete games for admin %d: %v", adminID, err)
		return fmt.Errorf("database error deleting admin's games: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, adminID)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete admin %d: %v", adminID, err)
		return fmt.Errorf("database error deleting admin: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("database error deleting admin: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	if err := tx.Commit(); err != nil {
		customLog.Warnf("Storage: Failed to commit admin delete for %d: %v", adminID, err)
		return fmt.Errorf("database error deleting admin: %w", err)
	}
	return nil
}
