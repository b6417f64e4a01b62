package auth

import "errors"

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrInvalidClaims = errors.New("token claims are missing or invalid")
)
