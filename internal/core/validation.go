// internal/core/validation.go
package core

import (
	"regexp"
	"strings"

	"github.com/arcaload/arcaload-backend/internal/domain"
)

// Regular expression for a plausible email address (local@domain.tld).
// Intentionally simple; deliverability is not checked.
var emailValidationRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinTitleLength is the minimum length for game titles, both on the
// admin add path and on public request submission.
const MinTitleLength = 2

// IsValidEmail checks whether a string looks like an email address.
func IsValidEmail(email string) bool {
	return emailValidationRegex.MatchString(email)
}

// IsValidTitle checks that a (pre-trimmed) title meets the minimum length.
func IsValidTitle(title string) bool {
	return len(title) >= MinTitleLength
}

// NormalizeRequestStatus lowercases a status value and reports whether it
// is one of the allowed request lifecycle states.
func NormalizeRequestStatus(status string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	switch normalized {
	case domain.StatusPending, domain.StatusAdded, domain.StatusRejected:
		return normalized, true
	}
	return "", false
}
