package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", user.RoleLead)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	p, err := PrincipalFromToken(context.Background(), decoded)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, user.RoleLead, p.Role)
}

func TestJWTService_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")

	_, _, err := svc.GenerateAccessToken("user-1", user.RoleEmployee)
	assert.Error(t, err)
}

func TestPrincipalFromToken_RejectsOtherTokenTypes(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	token, _, err := svc.JWTAuth().Encode(map[string]interface{}{
		ClaimUserID: "user-1",
		ClaimRole:   "EMPLOYEE",
		ClaimType:   "refresh",
	})
	require.NoError(t, err)

	_, err = PrincipalFromToken(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPrincipalFromToken_RejectsUnknownRole(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	token, _, err := svc.JWTAuth().Encode(map[string]interface{}{
		ClaimUserID: "user-1",
		ClaimRole:   "OWNER",
		ClaimType:   TokenTypeAccess,
	})
	require.NoError(t, err)

	_, err = PrincipalFromToken(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
	assert.ErrorIs(t, err, user.ErrUnknownRole)
}

func TestPrincipalFromToken_Nil(t *testing.T) {
	_, err := PrincipalFromToken(context.Background(), nil)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
