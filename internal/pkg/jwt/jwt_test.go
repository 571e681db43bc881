package jwt

import (
	"fmt"
	"testing"

	"github.com/ik-portal/hr-backend/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	employeeID := int64(42)

	tokenString, expiresAt, err := svc.GenerateAccessToken(7, &employeeID, user.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Positive(t, expiresAt)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	role, ok := token.Get("role")
	require.True(t, ok)
	assert.Equal(t, "employee", role)

	personelID, ok := token.Get("personel_id")
	require.True(t, ok)
	assert.Equal(t, "42", fmt.Sprint(personelID))

	tokenType, ok := token.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken(1, nil, user.RoleAdmin)
	assert.Error(t, err)
}
