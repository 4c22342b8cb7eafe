// internal/storage/game_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arcaload/arcaload-backend/internal/domain"
)

// Specific errors for catalog operations
var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameTitleExists = errors.New("game already exists")
)

// GameColumns is the canonical select list shared by all game queries.
const gameColumns = `id, title, description, genre, cover_image_url, download_link, downloads, created_at, updated_at, admin_id`

// Mutable game columns, whitelisted for partial updates.
var gameUpdateColumns = map[string]bool{
	"title":           true,
	"description":     true,
	"genre":           true,
	"cover_image_url": true,
	"download_link":   true,
}

func scanGame(row interface{ Scan(...any) error }) (*domain.Game, error) {
	var game domain.Game
	err := row.Scan(
		&game.ID, &game.Title, &game.Description, &game.Genre,
		&game.CoverImageURL, &game.DownloadLink, &game.Downloads,
		&game.CreatedAt, &game.UpdatedAt, &game.AdminID,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// CreateGame inserts a new game owned by adminID and returns the stored row.
func CreateGame(ctx context.Context, db *sql.DB, game *domain.Game) (*domain.Game, error) {
	now := time.Now().UTC()
	sqlStatement := `
	INSERT INTO games (title, description, genre, cover_image_url, download_link, downloads, created_at, updated_at, admin_id)
	VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)`
	result, err := db.ExecContext(ctx, sqlStatement,
		game.Title, game.Description, game.Genre, game.CoverImageURL,
		game.DownloadLink, now, now, game.AdminID,
	)
	if err != nil {
		customLog.Warnf("Storage: Failed to insert game '%s': %v", game.Title, err)
		return nil, fmt.Errorf("database error during game creation: %w", err)
	}
	gameID, err := result.LastInsertId()
	if err != nil {
		customLog.Warnf("Storage: Failed to get last insert ID for game '%s': %v", game.Title, err)
		return nil, fmt.Errorf("failed to retrieve game ID after creation: %w", err)
	}
	return GetGameByID(ctx, db, gameID)
}

// GetGameByID retrieves a single game without side effects.
func GetGameByID(ctx context.Context, db *sql.DB, gameID int64) (*domain.Game, error) {
	sqlStatement := fmt.Sprintf(`SELECT %s FROM games WHERE id = ? LIMIT 1`, gameColumns)
	game, err := scanGame(db.QueryRowContext(ctx, sqlStatement, gameID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		customLog.Warnf("Storage: Failed to find game %d: %v", gameID, err)
		return nil, fmt.Errorf("database error finding game: %w", err)
	}
	return game, nil
}

// IncrementDownloads bumps the download counter for a game and returns
// the updated row. Every successful detail fetch counts as a download,
// so the increment and read-back run in one transaction.
func IncrementDownloads(ctx context.Context, db *sql.DB, gameID int64) (*domain.Game, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		customLog.Warnf("Storage: Failed to begin download count transaction: %v", err)
		return nil, fmt.Errorf("database error counting download: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	result, err := tx.ExecContext(ctx, `UPDATE games SET downloads = downloads + 1 WHERE id = ?`, gameID)
	if err != nil {
		customLog.Warnf("Storage: Failed to increment downloads for game %d: %v", gameID, err)
		return nil, fmt.Errorf("database error counting download: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("database error counting download: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrGameNotFound
	}

	sqlStatement := fmt.Sprintf(`SELECT %s FROM games WHERE id = ? LIMIT 1`, gameColumns)
	game, err := scanGame(tx.QueryRowContext(ctx, sqlStatement, gameID))
	if err != nil {
		customLog.Warnf("Storage: Failed to read back game %d after increment: %v", gameID, err)
		return nil, fmt.Errorf("database error counting download: %w", err)
	}

	if err := tx.Commit(); err != nil {
		customLog.Warnf("Storage: Failed to commit download count for game %d: %v", gameID, err)
		return nil, fmt.Errorf("database error counting download: %w", err)
	}
	return game, nil
}

// ListGames returns a page of games ordered newest first, optionally
// filtered by exact genre. Pages past the end simply come back empty.
func ListGames(ctx context.Context, db *sql.DB, genre string, limit, offset int) ([]domain.Game, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if genre != "" {
		sqlStatement := fmt.Sprintf(`SELECT %s FROM games WHERE genre = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, gameColumns)
		rows, err = db.QueryContext(ctx, sqlStatement, genre, limit, offset)
	} else {
		sqlStatement := fmt.Sprintf(`SELECT %s FROM games ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, gameColumns)
		rows, err = db.QueryContext(ctx, sqlStatement, limit, offset)
	}
	if err != nil {
		customLog.Warnf("Storage: Failed to list games: %v", err)
		return nil, fmt.Errorf("database error listing games: %w", err)
	}
	defer rows.Close()

	return collectGames(rows)
}

// CountGames returns the total number of games, optionally filtered by genre.
func CountGames(ctx context.Context, db *sql.DB, genre string) (int64, error) {
	var (
		count int64
		err   error
	)
	if genre != "" {
		err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE genre = ?`, genre).Scan(&count)
	} else {
		err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count)
	}
	if err != nil {
		customLog.Warnf("Storage: Failed to count games: %v", err)
		return 0, fmt.Errorf("database error counting games: %w", err)
	}
	return count, nil
}

// ListGamesByAdmin returns a page of a single admin's games, newest first.
func ListGamesByAdmin(ctx context.Context, db *sql.DB, adminID int64, limit, offset int) ([]domain.Game, error) {
	sqlStatement := fmt.Sprintf(`SELECT %s FROM games WHERE admin_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, gameColumns)
	rows, err := db.QueryContext(ctx, sqlStatement, adminID, limit, offset)
	if err != nil {
		customLog.Warnf("Storage: Failed to list games for admin %d: %v", adminID, err)
		return nil, fmt.Errorf("database error listing games: %w", err)
	}
	defer rows.Close()

	return collectGames(rows)
}

// CountGamesByAdmin returns how many games an admin owns.
func CountGamesByAdmin(ctx context.Context, db *sql.DB, adminID int64) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE admin_id = ?`, adminID).Scan(&count)
	if err != nil {
		customLog.Warnf("Storage: Failed to count games for admin %d: %v", adminID, err)
		return 0, fmt.Errorf("database error counting games: %w", err)
	}
	return count, nil
}

// SumDownloadsByAdmin totals the download counters of an admin's games.
func SumDownloadsByAdmin(ctx context.Context, db *sql.DB, adminID int64) (int64, error) {
	var total int64
	err := db.QueryRowContext(ctx, `SELECT COALESCE(SUM(downloads), 0) FROM games WHERE admin_id = ?`, adminID).Scan(&total)
	if err != nil {
		customLog.Warnf("Storage: Failed to sum downloads for admin %d: %v", adminID, err)
		return 0, fmt.Errorf("database error summing downloads: %w", err)
	}
	return total, nil
}

// FindGameByTitle retrieves a game by exact (case-sensitive) title match.
// Used by the admin add path; the public intake path matches case-insensitively.
func FindGameByTitle(ctx context.Context, db *sql.DB, title string) (*domain.Game, error) {
	sqlStatement := fmt.Sprintf(`SELECT %s FROM games WHERE title = ? LIMIT 1`, gameColumns)
	game, err := scanGame(db.QueryRowContext(ctx, sqlStatement, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		customLog.Warnf("Storage: Failed to find game by title '%s': %v", title, err)
		return nil, fmt.Errorf("database error finding game: %w", err)
	}
	return game, nil
}

// GameTitleExistsFold reports whether any game matches the title
// case-insensitively.
func GameTitleExistsFold(ctx context.Context, db *sql.DB, title string) (bool, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE LOWER(title) = LOWER(?)`, title).Scan(&count)
	if err != nil {
		customLog.Warnf("Storage: Failed case-insensitive title lookup '%s': %v", title, err)
		return false, fmt.Errorf("database error finding game: %w", err)
	}
	return count > 0, nil
}

// UpdateGame overwrites the supplied mutable columns of a game and
// refreshes updated_at, returning the updated row. Unknown columns are
// rejected outright; callers pass trimmed values.
func UpdateGame(ctx context.Context, db *sql.DB, gameID int64, updates map[string]string) (*domain.Game, error) {
	setClauses := []string{}
	args := []any{}

	for column, value := range updates {
		if !gameUpdateColumns[column] {
			return nil, fmt.Errorf("refusing to update unknown column %q", column)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = ?", column))
		args = append(args, value)
	}
	if len(setClauses) == 0 {
		return GetGameByID(ctx, db, gameID)
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC(), gameID)

	// nolint:gosec // setClauses only contains whitelisted column names
	sqlStatement := fmt.Sprintf("UPDATE games SET %s WHERE id = ?", strings.Join(setClauses, ", "))
	result, err := db.ExecContext(ctx, sqlStatement, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed to update game %d: %v", gameID, err)
		return nil, fmt.Errorf("database error updating game: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("database error updating game: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrGameNotFound
	}

	return GetGameByID(ctx, db, gameID)
}

// DeleteGame permanently removes a game.
func DeleteGame(ctx context.Context, db *sql.DB, gameID int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, gameID)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete game %d: %v", gameID, err)
		return fmt.Errorf("database error deleting game: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("database error deleting game: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

// ListGenres returns the distinct non-empty genres, sorted ascending.
func ListGenres(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT genre FROM games WHERE genre != '' ORDER BY genre ASC`)
	if err != nil {
		customLog.Warnf("Storage: Failed to list genres: %v", err)
		return nil, fmt.Errorf("database error listing genres: %w", err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, fmt.Errorf("database error listing genres: %w", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error listing genres: %w", err)
	}
	return genres, nil
}

// SearchGames performs a case-insensitive substring search over title and
// description, plus genre when includeGenre is set (the /api/search
// variant). Results are capped; ordering is the database default.
func SearchGames(ctx context.Context, db *sql.DB, query string, includeGenre bool, limit int) ([]domain.Game, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	where := `LOWER(title) LIKE ? OR LOWER(description) LIKE ?`
	args := []any{pattern, pattern}
	if includeGenre {
		where += ` OR LOWER(genre) LIKE ?`
		args = append(args, pattern)
	}
	args = append(args, limit)

	sqlStatement := fmt.Sprintf(`SELECT %s FROM games WHERE %s LIMIT ?`, gameColumns, where)
	rows, err := db.QueryContext(ctx, sqlStatement, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed to search games for '%s': %v", query, err)
		return nil, fmt.Errorf("database error searching games: %w", err)
	}
	defer rows.Close()

	return collectGames(rows)
}

// CatalogStats gathers the platform-wide counters for /api/stats.
func CatalogStats(ctx context.Context, db *sql.DB) (*domain.PlatformStats, error) {
	stats := &domain.PlatformStats{}

	statsSQL := `
	SELECT
		(SELECT COUNT(*) FROM games),
		(SELECT COALESCE(SUM(downloads), 0) FROM games),
		(SELECT COUNT(*) FROM game_requests),
		(SELECT COUNT(*) FROM game_requests WHERE status = ?),
		(SELECT COUNT(DISTINCT genre) FROM games)`
	err := db.QueryRowContext(ctx, statsSQL, domain.StatusPending).Scan(
		&stats.TotalGames, &stats.TotalDownloads, &stats.TotalRequests,
		&stats.PendingRequests, &stats.UniqueGenres,
	)
	if err != nil {
		customLog.Warnf("Storage: Failed to gather stats: %v", err)
		return nil, fmt.Errorf("database error gathering stats: %w", err)
	}
	return stats, nil
}

func collectGames(rows *sql.Rows) ([]domain.Game, error) {
	games := []domain.Game{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning game: %w", err)
		}
		games = append(games, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading games: %w", err)
	}
	return games, nil
}
