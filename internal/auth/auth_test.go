// internal/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit_test_secret_key_1234567890"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("StrongPassword123!")
	require.NoError(t, err)
	assert.NotEqual(t, "StrongPassword123!", hash)

	assert.True(t, CheckPasswordHash("StrongPassword123!", hash))
	assert.False(t, CheckPasswordHash("WrongPassword", hash))
	assert.False(t, CheckPasswordHash("StrongPassword123!", "not-a-bcrypt-hash"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "arcadmin", testSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AdminID)
	assert.Equal(t, "arcadmin", claims.Username)
	assert.NotEmpty(t, claims.ID, "Every token needs a unique ID for revocation")

	other, err := GenerateToken(42, "arcadmin", testSecret, time.Minute)
	require.NoError(t, err)
	otherClaims, err := ValidateToken(other, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID, "Token IDs must differ between issuances")
}

func TestValidateTokenFailures(t *testing.T) {
	t.Run("Malformed", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", testSecret)
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateToken(42, "arcadmin", testSecret, time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(token, "a_different_secret_entirely_000000")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := GenerateToken(42, "arcadmin", testSecret, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(token, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestRevocationList(t *testing.T) {
	rl := NewRevocationList()

	assert.False(t, rl.IsRevoked("some-token-id"))

	rl.Revoke("some-token-id", time.Now().Add(time.Minute))
	assert.True(t, rl.IsRevoked("some-token-id"))
	assert.False(t, rl.IsRevoked("another-token-id"))

	t.Run("Expired Entries Are Swept", func(t *testing.T) {
		rl.Revoke("short-lived", time.Now().Add(-time.Second))
		assert.False(t, rl.IsRevoked("short-lived"), "Entries past their token expiry should be dropped")
	})
}
