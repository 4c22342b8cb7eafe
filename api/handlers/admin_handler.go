// api/handlers/admin_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcaload/arcaload-backend/api/models"
	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/auth"
	"github.com/arcaload/arcaload-backend/internal/core"
	"github.com/arcaload/arcaload-backend/internal/domain"
	"github.com/arcaload/arcaload-backend/internal/storage"
)

// Number of recent requests shown on the dashboard.
const dashboardRequestLimit = 20

// AdminHandler holds dependencies for the authenticated admin endpoints.
type AdminHandler struct {
	DB  *sql.DB
	Cfg *config.Config
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		DB:  db,
		Cfg: cfg,
	}
}

// getOwnedGame fetches a game from the path parameter and enforces that
// the calling admin owns it. Requests are unowned, games are not.
func (h *AdminHandler) getOwnedGame(c *gin.Context) (*domain.Game, error) {
	adminID := c.MustGet("adminID").(int64)

	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		return nil, storage.ErrGameNotFound
	}

	game, err := storage.GetGameByID(c.Request.Context(), h.DB, gameID)
	if err != nil {
		return nil, err
	}
	if game.AdminID != adminID {
		customLog.Warnf("Admin %d attempted to modify game %d owned by admin %d", adminID, game.ID, game.AdminID)
		return nil, auth.ErrForbidden
	}
	return game, nil
}

// Dashboard returns the calling admin's games (paginated), the most
// recent requests, and per-admin download totals.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	adminID := c.MustGet("adminID").(int64)
	params := core.ParsePageParams(c.Request.URL.Query(), core.DefaultGamesPerPage)

	totalGames, err := storage.CountGamesByAdmin(c.Request.Context(), h.DB, adminID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	games, err := storage.ListGamesByAdmin(c.Request.Context(), h.DB, adminID, params.PerPage, params.Offset())
	if err != nil {
		_ = c.Error(err)
		return
	}
	totalDownloads, err := storage.SumDownloadsByAdmin(c.Request.Context(), h.DB, adminID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	requests, err := storage.ListRequests(c.Request.Context(), h.DB, "", dashboardRequestLimit, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}
	totalRequests, err := storage.CountRequests(c.Request.Context(), h.DB, "")
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin":           c.MustGet("adminUsername"),
		"games":           games,
		"total_games":     totalGames,
		"pages":           core.TotalPages(totalGames, params.PerPage),
		"current_page":    params.Page,
		"total_downloads": totalDownloads,
		"game_requests":   requests,
		"total_requests":  totalRequests,
	})
}

// AddGame creates a new game listing owned by the calling admin. The
// duplicate-title check here is deliberately case-sensitive, unlike the
// public intake path.
func (h *AdminHandler) AddGame(c *gin.Context) {
	adminID := c.MustGet("adminID").(int64)

	var req models.AddGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Add game binding error: %v", err)
		_ = c.Error(err)
		return
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	genre := strings.TrimSpace(req.Genre)
	coverImageURL := strings.TrimSpace(req.CoverImageURL)
	downloadLink := strings.TrimSpace(req.DownloadLink)

	if title == "" || description == "" || genre == "" || coverImageURL == "" || downloadLink == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}
	if !core.IsValidTitle(title) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title too short"})
		return
	}

	_, err := storage.FindGameByTitle(c.Request.Context(), h.DB, title)
	if err == nil {
		_ = c.Error(storage.ErrGameTitleExists)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Game already exists"})
		return
	}
	if !errors.Is(err, storage.ErrGameNotFound) {
		_ = c.Error(err)
		return
	}

	game, err := storage.CreateGame(c.Request.Context(), h.DB, &domain.Game{
		Title:         title,
		Description:   description,
		Genre:         genre,
		CoverImageURL: coverImageURL,
		DownloadLink:  downloadLink,
		AdminID:       adminID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Admin %d added game %q (id %d)", adminID, game.Title, game.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("Game %q added successfully!", game.Title),
		"game":    game,
	})
}

// UpdateGame applies a partial update to a game the calling admin owns.
// Absent fields are untouched; present fields are trimmed and overwritten.
func (h *AdminHandler) UpdateGame(c *gin.Context) {
	game, err := h.getOwnedGame(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Update game binding error: %v", err)
		_ = c.Error(err)
		return
	}

	updates := map[string]string{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Genre != nil {
		updates["genre"] = strings.TrimSpace(*req.Genre)
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = strings.TrimSpace(*req.CoverImageURL)
	}
	if req.DownloadLink != nil {
		updates["download_link"] = strings.TrimSpace(*req.DownloadLink)
	}

	updated, err := storage.UpdateGame(c.Request.Context(), h.DB, game.ID, updates)
	if err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Admin %d updated game %d", game.AdminID, game.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Game updated successfully!",
		"game":    updated,
	})
}

// DeleteGame permanently removes a game the calling admin owns.
func (h *AdminHandler) DeleteGame(c *gin.Context) {
	game, err := h.getOwnedGame(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := storage.DeleteGame(c.Request.Context(), h.DB, game.ID); err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Admin %d deleted game %q (id %d)", game.AdminID, game.Title, game.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Game %q deleted successfully!", game.Title),
	})
}

// UpdateRequestStatus moves a game request through its lifecycle. Any
// authenticated admin may triage any request; there is no ownership
// check here, and moving a triaged request back to pending is allowed.
func (h *AdminHandler) UpdateRequestStatus(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("request_id"), 10, 64)
	if err != nil {
		_ = c.Error(storage.ErrRequestNotFound)
		return
	}
	if _, err := storage.GetRequestByID(c.Request.Context(), h.DB, requestID); err != nil {
		_ = c.Error(err)
		return
	}

	var req models.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Update request status binding error: %v", err)
		_ = c.Error(err)
		return
	}

	status, ok := core.NormalizeRequestStatus(req.Status)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}

	updated, err := storage.UpdateRequestStatus(c.Request.Context(), h.DB, requestID, status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Request %d status set to %s", requestID, status)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Request status updated to %s!", status),
		"request": updated,
	})
}
