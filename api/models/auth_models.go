// api/models/auth_models.go
package models

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/arcaload/arcaload-backend/internal/domain"
)

// --- Auth Request/Response Structs ---

// LoginRequest defines the structure for the admin login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the structure for the login response body
type LoginResponse struct {
	Message string       `json:"message"`
	Admin   domain.Admin `json:"admin"`
	Token   string       `json:"token"`
}

// --- JWT Claims ---

// AdminClaims includes standard claims plus the authenticated admin's
// identity. The registered ID (jti) lets logout revoke a single token.
type AdminClaims struct {
	AdminID  int64  `json:"adminID"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
