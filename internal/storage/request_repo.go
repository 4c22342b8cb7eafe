// internal/storage/request_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arcaload/arcaload-backend/internal/domain"
)

// Specific errors for request intake and triage
var (
	ErrRequestNotFound = errors.New("request not found")
	// ErrGameAlreadyAvailable means the requested title is already in the
	// catalog; it takes priority over ErrDuplicateRequest at intake time.
	ErrGameAlreadyAvailable = errors.New("game is already available")
	ErrDuplicateRequest     = errors.New("request for this game already exists")
)

const requestColumns = `id, game_title, user_email, status, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }) (*domain.GameRequest, error) {
	var (
		req   domain.GameRequest
		email sql.NullString
	)
	err := row.Scan(&req.ID, &req.GameTitle, &email, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		req.UserEmail = &email.String
	}
	return &req, nil
}

// CreateRequest inserts a new pending game request. userEmail may be nil.
func CreateRequest(ctx context.Context, db *sql.DB, gameTitle string, userEmail *string) (*domain.GameRequest, error) {
	now := time.Now().UTC()
	sqlStatement := `
	INSERT INTO game_requests (game_title, user_email, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, sqlStatement, gameTitle, userEmail, domain.StatusPending, now, now)
	if err != nil {
		customLog.Warnf("Storage: Failed to insert request '%s': %v", gameTitle, err)
		return nil, fmt.Errorf("database error during request creation: %w", err)
	}
	requestID, err := result.LastInsertId()
	if err != nil {
		customLog.Warnf("Storage: Failed to get last insert ID for request '%s': %v", gameTitle, err)
		return nil, fmt.Errorf("failed to retrieve request ID after creation: %w", err)
	}
	return GetRequestByID(ctx, db, requestID)
}

// GetRequestByID retrieves a single game request.
func GetRequestByID(ctx context.Context, db *sql.DB, requestID int64) (*domain.GameRequest, error) {
	sqlStatement := fmt.Sprintf(`SELECT %s FROM game_requests WHERE id = ? LIMIT 1`, requestColumns)
	req, err := scanRequest(db.QueryRowContext(ctx, sqlStatement, requestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		customLog.Warnf("Storage: Failed to find request %d: %v", requestID, err)
		return nil, fmt.Errorf("database error finding request: %w", err)
	}
	return req, nil
}

// RequestTitleExistsFold reports whether a request with this title exists,
// matched case-insensitively across all statuses.
func RequestTitleExistsFold(ctx context.Context, db *sql.DB, gameTitle string) (bool, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_requests WHERE LOWER(game_title) = LOWER(?)`, gameTitle).Scan(&count)
	if err != nil {
		customLog.Warnf("Storage: Failed case-insensitive request lookup '%s': %v", gameTitle, err)
		return false, fmt.Errorf("database error finding request: %w", err)
	}
	return count > 0, nil
}

// ListRequests returns a page of requests ordered newest first,
// optionally filtered by exact status.
func ListRequests(ctx context.Context, db *sql.DB, status string, limit, offset int) ([]domain.GameRequest, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		sqlStatement := fmt.Sprintf(`SELECT %s FROM game_requests WHERE status = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, requestColumns)
		rows, err = db.QueryContext(ctx, sqlStatement, status, limit, offset)
	} else {
		sqlStatement := fmt.Sprintf(`SELECT %s FROM game_requests ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, requestColumns)
		rows, err = db.QueryContext(ctx, sqlStatement, limit, offset)
	}
	if err != nil {
		customLog.Warnf("Storage: Failed to list requests: %v", err)
		return nil, fmt.Errorf("database error listing requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.GameRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading requests: %w", err)
	}
	return requests, nil
}

// CountRequests returns the total number of requests, optionally filtered
// by status.
func CountRequests(ctx context.Context, db *sql.DB, status string) (int64, error) {
	var (
		count int64
		err   error
	)
	if status != "" {
		err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_requests WHERE status = ?`, status).Scan(&count)
	} else {
		err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_requests`).Scan(&count)
	}
	if err != nil {
		customLog.Warnf("Storage: Failed to count requests: %v", err)
		return 0, fmt.Errorf("database error counting requests: %w", err)
	}
	return count, nil
}

// UpdateRequestStatus sets a request's status (already normalized by the
// caller) and refreshes updated_at, returning the updated row. The
// lifecycle is not forward-only: moving a triaged request back to
// pending is allowed.
func UpdateRequestStatus(ctx context.Context, db *sql.DB, requestID int64, status string) (*domain.GameRequest, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE game_requests SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), requestID,
	)
	if err != nil {
		customLog.Warnf("Storage: Failed to update request %d status: %v", requestID, err)
		return nil, fmt.Errorf("database error updating request: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("database error updating request: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrRequestNotFound
	}
	return GetRequestByID(ctx, db, requestID)
}
