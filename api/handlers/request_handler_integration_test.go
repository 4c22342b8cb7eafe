// api/handlers/request_handler_integration_test.go
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcaload/arcaload-backend/api/models"
	"github.com/arcaload/arcaload-backend/internal/domain"
)

type requestsPage struct {
	Requests    []domain.GameRequest `json:"requests"`
	Total       int64                `json:"total"`
	Pages       int                  `json:"pages"`
	CurrentPage int                  `json:"current_page"`
}

type submitResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Request *domain.GameRequest `json:"request"`
}

// TestRequestEndpoints covers public game request intake and the
// request listing.
func TestRequestEndpoints(t *testing.T) {
	server, db, cleanup := setupTestServer(t)
	defer cleanup()

	assert := assert.New(t)

	adminID := createTestAdmin(t, db, "reqadmin", "reqadmin@example.com", "StrongPassword123!")
	addTestGame(t, db, adminID, "Starfall Siege", "Strategy")

	t.Run("Submit Request Success", func(t *testing.T) {
		res := doJSON(t, http.MethodPost, server.URL+"/request-game", "", models.SubmitRequestRequest{
			GameTitle: "Hollow Depths",
			UserEmail: "player@example.com",
		})
		defer res.Body.Close()
		assert.Equal(http.StatusCreated, res.StatusCode, "Expected status 201 Created")

		var body submitResponse
		decodeJSON(t, res.Body, &body)
		assert.True(body.Success)
		assert.Contains(body.Message, "submitted successfully")
		require.NotNil(t, body.Request)
		assert.Equal("Hollow Depths", body.Request.GameTitle)
		assert.Equal(domain.StatusPending, body.Request.Status)
		require.NotNil(t, body.Request.UserEmail)
		assert.Equal("player@example.com", *body.Request.UserEmail)
	})

	t.Run("Submit Request Without Email", func(t *testing.T) {
		res := doJSON(t, http.MethodPost, server.URL+"/request-game", "", models.SubmitRequestRequest{
			GameTitle: "Ember Vale",
		})
		defer res.Body.Close()
		assert.Equal(http.StatusCreated, res.StatusCode)

		var body submitResponse
		decodeJSON(t, res.Body, &body)
		require.NotNil(t, body.Request)
		assert.Nil(body.Request.UserEmail, "Omitted email should be stored as null")
	})

	t.Run("Submit Request Title Too Short", func(t *testing.T) {
		for _, title := range []string{"", "  ", "x"} {
			res := doJSON(t, http.MethodPost, server.URL+"/request-game", "", models.SubmitRequestRequest{
				GameTitle: title,
			})
			var body submitResponse
			decodeJSON(t, res.Body, &body)
			res.Body.Close()

			assert.Equal(http.StatusBadRequest, res.StatusCode, "title %q should be rejected", title)
			assert.False(body.Success)
			assert.Equal("Game title is required", body.Message)
		}
	})

	t.Run("Submit Request Invalid Email", func(t *testing.T) {
		res := doJSON(t, http.MethodPost, server.URL+"/request-game", "", models.SubmitRequestRequest{
			GameTitle: "Hollow Depths II",
			UserEmail: "not-an-email",
		})
		defer res.Body.Close()
		assert.Equal(http.StatusBadRequest, res.StatusCode)

		var body submitResponse
		decodeJSON(t, res.Body, &body)
		assert.Equal("Invalid email address", body.Message)
	})

	t.Run("Submit Request For Available Game", func(t *testing.T) {
		// Catalog lookup is case insensitive
		res := doJSON(t, http.MethodPost, server.URL+"/request-game", "", models.SubmitRequestRequest{
			GameTitle: "STARFALL SIEGE",
		})
		defer res.Body.Close()
		assert.Equal(http.StatusBadRequest, res.StatusCode)

		var body submitResponse
		decodeJSON(t, res.Body, &body)
		assert.False(body.Success)
		assert.Contains(body.Message, "already available")
	})

	t.Run("Submit Duplicate Request", func(t *testing.T) {
		// "Hollow Depths" was requested above; a different casing still collides
		res := doJSON(t, http.MethodPost, server.URL+"/request-game", "", models.SubmitRequestRequest{
			GameTitle: "hollow depths",
		})
		defer res.Body.Close()
		assert.Equal(http.StatusBadRequest, res.StatusCode)

		var body submitResponse
		decodeJSON(t, res.Body, &body)
		assert.False(body.Success)
		assert.Contains(body.Message, "already exists")
	})

	t.Run("List Requests", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/requests", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusOK, res.StatusCode)

		var page requestsPage
		decodeJSON(t, res.Body, &page)
		assert.Equal(int64(2), page.Total)
		assert.Equal(1, page.CurrentPage)
		require.Len(t, page.Requests, 2)
		assert.Equal("Ember Vale", page.Requests[0].GameTitle, "Most recent request should come first")
	})

	t.Run("List Requests Status Filter", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/requests?status=added", "", nil)
		defer res.Body.Close()
		assert.Equal(http.StatusOK, res.StatusCode)

		var page requestsPage
		decodeJSON(t, res.Body, &page)
		assert.Equal(int64(0), page.Total)
		assert.Empty(page.Requests)
	})

	t.Run("List Requests Pagination", func(t *testing.T) {
		res := doJSON(t, http.MethodGet, server.URL+"/api/requests?per_page=1&page=2", "", nil)
		defer res.Body.Close()

		var page requestsPage
		decodeJSON(t, res.Body, &page)
		assert.Equal(int64(2), page.Total)
		assert.Equal(2, page.Pages)
		assert.Equal(2, page.CurrentPage)
		require.Len(t, page.Requests, 1)
		assert.Equal("Hollow Depths", page.Requests[0].GameTitle)
	})
}
