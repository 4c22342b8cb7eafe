// internal/auth/revocation.go
package auth

import (
	"sync"
	"time"
)

// RevocationList tracks token IDs invalidated by logout until their
// natural expiry. State is per-process; a multi-instance deployment
// would need a shared store behind the same interface.
type RevocationList struct {
	mutex   sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

func NewRevocationList() *RevocationList {
	return &RevocationList{
		revoked: make(map[string]time.Time),
	}
}

// Revoke marks a token ID as invalid. The entry is dropped once the
// token would have expired anyway.
func (rl *RevocationList) Revoke(tokenID string, expiresAt time.Time) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.sweepLocked()
	rl.revoked[tokenID] = expiresAt
}

// IsRevoked reports whether a token ID has been invalidated.
func (rl *RevocationList) IsRevoked(tokenID string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.sweepLocked()
	_, revoked := rl.revoked[tokenID]
	return revoked
}

// sweepLocked removes entries for tokens that have expired on their own.
// Caller must hold the mutex.
func (rl *RevocationList) sweepLocked() {
	now := time.Now()
	for tokenID, expiresAt := range rl.revoked {
		if now.After(expiresAt) {
			delete(rl.revoked, tokenID)
		}
	}
}
