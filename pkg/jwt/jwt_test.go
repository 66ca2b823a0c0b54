package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediareview-backend/pkg/jwt"
)

func TestGenerateAndValidateToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(7, "alex@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alex@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	other := jwt.NewManager("other-secret", time.Hour)

	token, err := manager.GenerateToken(7, "alex@example.com", "user")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(7, "alex@example.com", "user")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}
