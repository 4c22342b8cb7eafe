// api/handlers/helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/arcaload/arcaload-backend/api"
	"github.com/arcaload/arcaload-backend/api/models"
	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/auth"
	"github.com/arcaload/arcaload-backend/internal/domain"
	"github.com/arcaload/arcaload-backend/internal/storage"
)

// testDBSetup creates a temporary SQLite DB for testing and returns the DB pool and cleanup func.
func testDBSetup(t *testing.T) (*sql.DB, *config.Config, func()) {
	t.Helper()

	tempDir := t.TempDir()

	testCfg := &config.Config{
		ServerPort:     ":0", // Use random available port
		JWTSecret:      "test_secret_key_for_integration_tests_1234567890",
		JWTExpiration:  time.Minute * 5,
		DatabaseDir:    tempDir,
		DatabaseFile:   "test_arcaload.db",
		AdminUsername:  "admin",
		AdminEmail:     "admin@arcaload.com",
		AdminPassword:  "Admin@123",
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	db, err := storage.ConnectDB(testCfg) // Creates tables
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	}

	return db, testCfg, cleanup
}

// setupTestServer creates a test server instance with a test DB.
func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cfg, dbCleanup := testDBSetup(t)
	router := api.SetupRouter(db, cfg) // Setup router with test DB
	server := httptest.NewServer(router)

	cleanup := func() {
		server.Close()
		dbCleanup()
	}

	return server, db, cleanup
}

// createTestAdmin inserts an admin account directly through the storage layer.
func createTestAdmin(t *testing.T, db *sql.DB, username, email, password string) int64 {
	t.Helper()

	passwordHash, err := auth.HashPassword(password)
	require.NoError(t, err, "hashing test admin password should not fail")

	adminID, err := storage.CreateAdmin(context.Background(), db, username, email, passwordHash)
	require.NoError(t, err, "creating test admin should not fail")
	return adminID
}

// loginTestAdmin performs a real login request and returns the bearer token.
func loginTestAdmin(t *testing.T, serverURL, username, password string) string {
	t.Helper()

	res := doJSON(t, http.MethodPost, serverURL+"/admin/login", "", models.LoginRequest{
		Username: username,
		Password: password,
	})
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode, "test login should succeed")

	var body models.LoginResponse
	decodeJSON(t, res.Body, &body)
	require.NotEmpty(t, body.Token, "test login should return a token")
	return body.Token
}

// addTestGame inserts a game directly through the storage layer.
func addTestGame(t *testing.T, db *sql.DB, adminID int64, title, genre string) *domain.Game {
	t.Helper()

	game, err := storage.CreateGame(context.Background(), db, &domain.Game{
		Title:         title,
		Description:   "Description of " + title,
		Genre:         genre,
		CoverImageURL: "https://img.example.com/" + title + ".png",
		DownloadLink:  "https://dl.example.com/" + title + ".zip",
		AdminID:       adminID,
	})
	require.NoError(t, err, "creating test game should not fail")
	return game
}

// doJSON sends a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "marshaling request body should not fail")
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err, "building request should not fail")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "request should not fail")
	return res
}

// decodeJSON decodes a response body into target.
func decodeJSON(t *testing.T, body io.Reader, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(target), "decoding response body should not fail")
}
