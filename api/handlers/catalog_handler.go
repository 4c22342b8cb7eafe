// api/handlers/catalog_handler.go
package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/core"    // For pagination parsing
	"github.com/arcaload/arcaload-backend/internal/storage" // For DB operations
)

// Search results are capped regardless of how broad the query is.
const searchResultLimit = 20

// Number of games shown on the landing page.
const featuredGamesLimit = 10

// CatalogHandler holds dependencies for the public catalog endpoints.
type CatalogHandler struct {
	DB  *sql.DB
	Cfg *config.Config
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(db *sql.DB, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		DB:  db,
		Cfg: cfg,
	}
}

// ListGames returns a page of games, newest first, with an optional
// exact genre filter. Pages past the end return an empty list with the
// true total, not an error.
func (h *CatalogHandler) ListGames(c *gin.Context) {
	params := core.ParsePageParams(c.Request.URL.Query(), core.DefaultGamesPerPage)
	genre := c.Query("genre")

	total, err := storage.CountGames(c.Request.Context(), h.DB, genre)
	if err != nil {
		_ = c.Error(err)
		return
	}

	games, err := storage.ListGames(c.Request.Context(), h.DB, genre, params.PerPage, params.Offset())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games":        games,
		"total":        total,
		"pages":        core.TotalPages(total, params.PerPage),
		"current_page": params.Page,
	})
}

// FeaturedGames returns the most recent games for the landing page.
func (h *CatalogHandler) FeaturedGames(c *gin.Context) {
	games, err := storage.ListGames(c.Request.Context(), h.DB, "", featuredGamesLimit, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

// GetGame returns a single game's details. Every successful fetch counts
// as a download: the counter is incremented before the row is returned,
// with no deduplication by viewer.
func (h *CatalogHandler) GetGame(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		_ = c.Error(storage.ErrGameNotFound)
		return
	}

	game, err := storage.IncrementDownloads(c.Request.Context(), h.DB, gameID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, game)
}

// ListGenres returns the distinct non-empty genres, sorted ascending.
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	genres, err := storage.ListGenres(c.Request.Context(), h.DB)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// Search matches games by title, description and genre. Queries shorter
// than two characters yield an empty result rather than an error.
func (h *CatalogHandler) Search(c *gin.Context) {
	h.search(c, true)
}

// SearchBasic is the landing-page variant: title and description only.
func (h *CatalogHandler) SearchBasic(c *gin.Context) {
	h.search(c, false)
}

func (h *CatalogHandler) search(c *gin.Context, includeGenre bool) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < core.MinTitleLength {
		c.JSON(http.StatusOK, gin.H{"results": []any{}})
		return
	}

	games, err := storage.SearchGames(c.Request.Context(), h.DB, query, includeGenre, searchResultLimit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": games})
}

// Stats returns platform-wide catalog and request counters.
func (h *CatalogHandler) Stats(c *gin.Context) {
	stats, err := storage.CatalogStats(c.Request.Context(), h.DB)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
