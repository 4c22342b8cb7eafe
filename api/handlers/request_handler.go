// api/handlers/request_handler.go
package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcaload/arcaload-backend/api/models"
	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/core"
	"github.com/arcaload/arcaload-backend/internal/storage"
)

// RequestHandler holds dependencies for the public request-intake endpoints.
type RequestHandler struct {
	DB  *sql.DB
	Cfg *config.Config
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(db *sql.DB, cfg *config.Config) *RequestHandler {
	return &RequestHandler{
		DB:  db,
		Cfg: cfg,
	}
}

// SubmitRequest accepts a visitor's game request. The catalog-presence
// check runs before the duplicate-request check; that ordering decides
// which rejection message the caller sees and must not be swapped.
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var req models.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Submit request binding error: %v", err)
		_ = c.Error(err)
		return
	}

	gameTitle := strings.TrimSpace(req.GameTitle)
	userEmail := strings.TrimSpace(req.UserEmail)

	if !core.IsValidTitle(gameTitle) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Game title is required"})
		return
	}
	if userEmail != "" && !core.IsValidEmail(userEmail) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email address"})
		return
	}

	// Already in the catalog? (case-insensitive)
	available, err := storage.GameTitleExistsFold(c.Request.Context(), h.DB, gameTitle)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if available {
		_ = c.Error(storage.ErrGameAlreadyAvailable)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Game %q is already available!", gameTitle),
		})
		return
	}

	// Already requested? (case-insensitive, any status)
	duplicate, err := storage.RequestTitleExistsFold(c.Request.Context(), h.DB, gameTitle)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if duplicate {
		_ = c.Error(storage.ErrDuplicateRequest)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Request for %q already exists", gameTitle),
		})
		return
	}

	var emailPtr *string
	if userEmail != "" {
		emailPtr = &userEmail
	}
	gameRequest, err := storage.CreateRequest(c.Request.Context(), h.DB, gameTitle, emailPtr)
	if err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Game request submitted: %q (id %d)", gameTitle, gameRequest.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("Request for %q submitted successfully! Admin will review it.", gameTitle),
		"request": gameRequest,
	})
}

// ListRequests returns a page of game requests, newest first, with an
// optional exact status filter.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	params := core.ParsePageParams(c.Request.URL.Query(), core.DefaultRequestsPerPage)
	status := c.Query("status")

	total, err := storage.CountRequests(c.Request.Context(), h.DB, status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	requests, err := storage.ListRequests(c.Request.Context(), h.DB, status, params.PerPage, params.Offset())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests":     requests,
		"total":        total,
		"pages":        core.TotalPages(total, params.PerPage),
		"current_page": params.Page,
	})
}
