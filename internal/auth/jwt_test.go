package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrslabs/kiffscore/internal/permissions"
)

func testManager(t *testing.T) *JWTManager {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	return NewJWTManager()
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := testManager(t)

	token, err := manager.GenerateAccessJWT("user-1", permissions.RoleUser, 0)
	assert.NoError(t, err)

	userID, role, err := manager.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, permissions.RoleUser, role)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	manager := testManager(t)

	token, err := manager.GenerateAccessJWT("user-1", permissions.RoleUser, -time.Minute)
	assert.NoError(t, err)

	_, _, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	manager := testManager(t)
	token, err := manager.GenerateAccessJWT("user-1", permissions.RoleAdmin, 0)
	assert.NoError(t, err)

	other := &JWTManager{secret: "another-secret"}
	_, _, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	_, _, err = manager.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}
