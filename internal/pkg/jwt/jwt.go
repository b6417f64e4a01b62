package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimUserID = "user_id"
	ClaimRole   = "role"
	ClaimType   = "type"

	TokenTypeAccess = "access"
)

type Service interface {
	GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimUserID: userID,
		ClaimRole:   string(role),
		ClaimType:   TokenTypeAccess,
		"exp":       expiresAt,
	})
	return tokenString, expiresAt, err
}

// PrincipalFromToken reads the caller identity out of a verified access token.
func PrincipalFromToken(ctx context.Context, token jwt.Token) (user.Principal, error) {
	if token == nil {
		return user.Principal{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return user.Principal{}, auth.ErrInvalidToken
	}

	tokenType, ok := claims[ClaimType].(string)
	if !ok || tokenType != TokenTypeAccess {
		return user.Principal{}, auth.ErrInvalidToken
	}

	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return user.Principal{}, auth.ErrInvalidClaims
	}

	roleStr, ok := claims[ClaimRole].(string)
	if !ok {
		return user.Principal{}, auth.ErrInvalidClaims
	}
	role, err := user.ParseRole(roleStr)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w", auth.ErrInvalidClaims, err)
	}

	return user.Principal{UserID: userID, Role: role}, nil
}
