// api/handlers/auth_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arcaload/arcaload-backend/api/models"
	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/auth" // Import internal auth logic
	"github.com/arcaload/arcaload-backend/internal/logger"
	"github.com/arcaload/arcaload-backend/internal/storage" // Import storage functions/errors
)

var (
	customLog = logger.NewLogger()
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	DB          *sql.DB
	Cfg         *config.Config
	Revocations *auth.RevocationList
}

// NewAuthHandler creates a new AuthHandler with dependencies.
func NewAuthHandler(db *sql.DB, cfg *config.Config, revocations *auth.RevocationList) *AuthHandler {
	return &AuthHandler{
		DB:          db,
		Cfg:         cfg,
		Revocations: revocations,
	}
}

// Login verifies admin credentials and issues a bearer token on success.
// Unknown usernames and wrong passwords both come back as the same
// invalid-credentials response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Login binding error: %v", err)
		_ = c.Error(err) // Attach binding error
		return           // Let middleware handle
	}

	admin, err := storage.FindAdminByUsername(c.Request.Context(), h.DB, req.Username)
	if err != nil {
		customLog.Warnf("Login failed for username %s: %v", req.Username, err)
		if errors.Is(err, storage.ErrAdminNotFound) {
			_ = c.Error(storage.ErrInvalidCredentials)
		} else {
			_ = c.Error(err)
		}
		return
	}

	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		customLog.Warnf("Login attempt failed for username %s: invalid password", admin.Username)
		_ = c.Error(storage.ErrInvalidCredentials)
		return // Let middleware handle
	}

	tokenString, err := auth.GenerateToken(admin.ID, admin.Username, h.Cfg.JWTSecret, h.Cfg.JWTExpiration)
	if err != nil {
		customLog.Warnf("Failed to generate token for admin %d: %v", admin.ID, err)
		_ = c.Error(err)
		return
	}

	customLog.Printf("Admin %s logged in", admin.Username)
	c.JSON(http.StatusOK, models.LoginResponse{Message: "Logged in successfully", Admin: *admin, Token: tokenString})
}

// Logout revokes the presented token so it stops working immediately,
// not just at expiry. Runs behind AuthMiddleware.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.MustGet("tokenID").(string)
	expiresAt := c.MustGet("tokenExpiresAt").(time.Time)

	h.Revocations.Revoke(tokenID, expiresAt)

	customLog.Printf("Admin %v logged out, token %s revoked", c.MustGet("adminID"), tokenID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated admin's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	adminID := c.MustGet("adminID").(int64)

	admin, err := storage.FindAdminByID(c.Request.Context(), h.DB, adminID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, admin)
}
