// api/handlers/catalog_handler_integration_test.go
package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcaload/arcaload-backend/internal/domain"
	"github.com/arcaload/arcaload-backend/internal/storage"
)

type gamesPage struct {
	Games       []domain.Game `json:"games"`
	Total       int64         `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"current_page"`
}

type searchResults struct {
	Results []domain.Game `json:"results"`
}

// TestCatalogEndpoints covers the public listing, detail, genre, search
// and stats endpoints.
func TestCatalogEndpoints(t *testing.T) {
	server, db, cleanup := setupTestServer(t)
	defer cleanup()

	assert := assert.New(t)

	adminID := createTestAdmin(t, db, "catalogadmin", "catalog@example.com", "StrongPassword123!")
	first := addTestGame(t, db, adminID, "Starfall Siege", "Strategy")
	addTestGame(t, db, adminID, "Neon Drift", "Racing")
	latest := addTestGame(t, db, adminID, "Puzzle Planet", "Puzzle")

	t.Run("List Games Newest First", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/games", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusOK, res.StatusCode)

		var page gamesPage
		decodeJSON(t, res.Body, &page)
		assert.Equal(int64(3), page.Total)
		assert.Equal(1, page.Pages)
		assert.Equal(1, page.CurrentPage)
		require.Len(t, page.Games, 3)
		assert.Equal(latest.Title, page.Games[0].Title, "Most recent game should come first")
		assert.Equal(first.Title, page.Games[2].Title)
	})

	t.Run("List Games Genre Filter", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/games?genre=Racing", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusOK, res.StatusCode)

		var page gamesPage
		decodeJSON(t, res.Body, &page)
		assert.Equal(int64(1), page.Total)
		require.Len(t, page.Games, 1)
		assert.Equal("Neon Drift", page.Games[0].Title)
	})

	t.Run("List Games Page Size", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/games?per_page=2", "", nil)
		defer res.Body.Close()

		var page gamesPage
		decodeJSON(t, res.Body, &page)
		assert.Equal(int64(3), page.Total)
		assert.Equal(2, page.Pages)
		assert.Len(page.Games, 2)
	})

	t.Run("List Games Page Overflow Is Empty Not Error", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/games?page=99", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusOK, res.StatusCode)

		var page gamesPage
		decodeJSON(t, res.Body, &page)
		assert.Empty(page.Games, "Pages past the end should be empty")
		assert.Equal(int64(3), page.Total, "Total should still reflect the true row count")
		assert.Equal(99, page.CurrentPage)
	})

	t.Run("Get Game Counts Downloads", func(t *testing.T) {
		fetches := 3
		for i := 1; i <= fetches; i++ {
			res := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/games/%d", server.URL, first.ID), "", nil)
			var game domain.Game
			decodeJSON(t, res.Body, &game)
			res.Body.Close()

			assert.Equal(http.StatusOK, res.StatusCode)
			assert.Equal(int64(i), game.Downloads, "Each detail fetch should count one download")
		}

		stored, err := storage.GetGameByID(context.Background(), db, first.ID)
		require.NoError(t, err)
		assert.Equal(int64(fetches), stored.Downloads, "Counter must be persisted")
	})

	t.Run("Get Game Not Found", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/games/99999", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusNotFound, res.StatusCode)
	})

	t.Run("Genres Sorted Ascending", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/genres", "", nil)
		defer res.Body.Close()

		var body struct {
			Genres []string `json:"genres"`
		}
		decodeJSON(t, res.Body, &body)
		assert.Equal([]string{"Puzzle", "Racing", "Strategy"}, body.Genres)
	})

	t.Run("Search Short Query Is Empty", func(t *testing.T) {
		for _, q := range []string{"", "a", "  a  "} {
			res := doJSON(t, http.MethodGet, server.URL+"/api/search?q="+url.QueryEscape(q), "", nil)
			var body searchResults
			decodeJSON(t, res.Body, &body)
			res.Body.Close()

			assert.Equal(http.StatusOK, res.StatusCode)
			assert.Empty(body.Results, "query %q should yield no results", q)
		}
	})

	t.Run("Search No Match Is Empty Not Error", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/search?q=zzzz", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusOK, res.StatusCode)

		var body searchResults
		decodeJSON(t, res.Body, &body)
		assert.Empty(body.Results)
	})

	t.Run("Search Is Case Insensitive", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/search?q=NEON", "", nil)
		defer res.Body.Close()

		var body searchResults
		decodeJSON(t, res.Body, &body)
		assert.Len(body.Results, 1)
	})

	t.Run("API Search Matches Genre, Basic Search Does Not", func(t *testing.T) {
		apiRes := doJSON(t, http.MethodGet, server.URL+"/api/search?q=racing", "", nil)
		var apiBody searchResults
		decodeJSON(t, apiRes.Body, &apiBody)
		apiRes.Body.Close()
		assert.Len(apiBody.Results, 1, "/api/search should match on genre")

		basicRes := doJSON(t, http.MethodGet, server.URL+"/search?q=racing", "", nil)
		var basicBody searchResults
		decodeJSON(t, basicRes.Body, &basicBody)
		basicRes.Body.Close()
		assert.Empty(basicBody.Results, "/search should only match title and description")
	})

	t.Run("Featured Games", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/games/featured", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusOK, res.StatusCode)

		var body struct {
			Games []domain.Game `json:"games"`
		}
		decodeJSON(t, res.Body, &body)
		assert.Len(body.Games, 3)
	})

	t.Run("Stats", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/stats", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusOK, res.StatusCode)

		var stats domain.PlatformStats
		decodeJSON(t, res.Body, &stats)
		assert.Equal(int64(3), stats.TotalGames)
		assert.Equal(int64(3), stats.TotalDownloads, "Download counter fetches above should show up")
		assert.Equal(int64(3), stats.UniqueGenres)
		assert.Equal(int64(0), stats.TotalRequests)
		assert.Equal(int64(0), stats.PendingRequests)
	})
}
