// api/models/catalog_models.go
package models

// --- Game Mutation Request Structs ---

// AddGameRequest defines the structure for creating a game listing.
// All five fields must also be non-blank after trimming; handlers check
// that because binding:"required" alone lets whitespace through.
type AddGameRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Genre         string `json:"genre" binding:"required"`
	CoverImageURL string `json:"cover_image_url" binding:"required"`
	DownloadLink  string `json:"download_link" binding:"required"`
}

// UpdateGameRequest carries a partial update: only non-nil fields are
// applied, each trimmed before being written.
type UpdateGameRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Genre         *string `json:"genre"`
	CoverImageURL *string `json:"cover_image_url"`
	DownloadLink  *string `json:"download_link"`
}

// --- Request Intake / Triage Structs ---

// SubmitRequestRequest defines the public game-request submission body.
// Validation (title length, optional email format) is handler-side so
// the caller gets the specific human-readable message for each failure.
type SubmitRequestRequest struct {
	GameTitle string `json:"game_title"`
	UserEmail string `json:"user_email"`
}

// UpdateRequestStatusRequest sets a request's lifecycle status; the value
// is matched case-insensitively against pending/added/rejected.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
