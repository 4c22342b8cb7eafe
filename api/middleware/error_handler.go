// api/middleware/error_handler.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // Import validator for binding errors

	"github.com/arcaload/arcaload-backend/internal/auth"    // Import internal auth errors
	"github.com/arcaload/arcaload-backend/internal/storage" // Import internal storage errors
)

// ErrorHandler creates a Gin middleware for centralized error handling.
// Handlers attach errors with c.Error; whatever reaches the end of the
// chain unanswered is mapped to a status code and a safe message here.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Process request using subsequent handlers
		c.Next()

		// Check if any errors were attached during handler execution
		if len(c.Errors) == 0 {
			return // No errors, nothing to do
		}

		// We only handle the last error for the response.
		err := c.Errors.Last().Err
		customLog.Printf("[ErrorHandler] Detected error: %v | Type: %T", err, err)

		// --- Map error to HTTP status code and user message ---
		var statusCode int
		var userMessage string

		if errors.Is(err, storage.ErrAdminNotFound) ||
			errors.Is(err, storage.ErrGameNotFound) ||
			errors.Is(err, storage.ErrRequestNotFound) {
			statusCode = http.StatusNotFound
			userMessage = err.Error()
		} else if errors.Is(err, storage.ErrGameTitleExists) ||
			errors.Is(err, storage.ErrGameAlreadyAvailable) ||
			errors.Is(err, storage.ErrDuplicateRequest) {
			// Business-rule conflicts surface as 400s, matching the
			// public API contract rather than 409.
			statusCode = http.StatusBadRequest
			userMessage = err.Error()
		} else if errors.Is(err, storage.ErrUsernameExists) ||
			errors.Is(err, storage.ErrEmailExists) {
			statusCode = http.StatusConflict
			userMessage = err.Error()
		} else if errors.Is(err, storage.ErrInvalidCredentials) {
			statusCode = http.StatusUnauthorized
			userMessage = "Invalid credentials"
		} else if errors.Is(err, auth.ErrTokenMalformed) ||
			errors.Is(err, auth.ErrTokenInvalid) ||
			errors.Is(err, auth.ErrTokenClaimsInvalid) ||
			errors.Is(err, auth.ErrTokenRevoked) ||
			errors.Is(err, auth.ErrUnexpectedSigningMethod) {
			statusCode = http.StatusUnauthorized
			userMessage = "Invalid or malformed authentication token."
		} else if errors.Is(err, auth.ErrTokenExpired) {
			statusCode = http.StatusUnauthorized
			userMessage = "Authentication token has expired."
		} else if errors.Is(err, auth.ErrForbidden) {
			statusCode = http.StatusForbidden
			userMessage = "You do not have permission to modify this resource."
		} else if validationErrs, ok := err.(validator.ValidationErrors); ok {
			// Handle validation errors from c.ShouldBindJSON
			statusCode = http.StatusBadRequest
			userMessage = "Validation failed. Please check your input."
			for _, fe := range validationErrs {
				customLog.Printf("Validation Error: Field %s failed on %s", fe.Field(), fe.Tag())
			}
		} else {
			// --- Default/Fallback for unhandled errors ---
			// The in-flight transaction (if any) was already rolled back in
			// the storage layer; respond with a generic message only.
			statusCode = http.StatusInternalServerError
			userMessage = "An unexpected internal server error occurred."
			customLog.Printf("Unhandled error type: %T, Error: %v", err, err)
		}

		// Abort execution and send JSON response
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, gin.H{"error": userMessage})
		} else {
			customLog.Printf("[ErrorHandler] Warning: Response already written before handling error.")
		}
	}
}
