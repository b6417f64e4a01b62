package user

import "errors"

var (
	ErrUnknownRole             = errors.New("unknown role")
	ErrPrincipalMissing        = errors.New("authenticated principal missing from context")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
