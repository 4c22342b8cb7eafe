// internal/domain/models.go
package domain

import "time"

// Request status lifecycle values. A request starts as pending and is
// moved to added or rejected by an admin.
const (
	StatusPending  = "pending"
	StatusAdded    = "added"
	StatusRejected = "rejected"
)

// Admin defines the structure for admin accounts in the DB
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Game is a published catalog entry, owned by exactly one admin.
type Game struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Genre         string    `json:"genre"`
	CoverImageURL string    `json:"cover_image_url"`
	DownloadLink  string    `json:"download_link"`
	Downloads     int64     `json:"downloads"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	AdminID       int64     `json:"-"` // owner, not part of the public shape
}

// GameRequest is a visitor-submitted request for a game that is not in
// the catalog yet. Requests are unowned; any admin may triage them.
type GameRequest struct {
	ID        int64     `json:"id"`
	GameTitle string    `json:"game_title"`
	UserEmail *string   `json:"user_email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlatformStats aggregates catalog and request counters for /api/stats.
type PlatformStats struct {
	TotalGames      int64 `json:"total_games"`
	TotalDownloads  int64 `json:"total_downloads"`
	TotalRequests   int64 `json:"total_requests"`
	PendingRequests int64 `json:"pending_requests"`
	UniqueGenres    int64 `json:"unique_genres"`
}
