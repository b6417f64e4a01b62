package user

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Organisation-wide access
	RoleLead     Role = "LEAD"     // Leads exactly the teams that reference them
	RoleEmployee Role = "EMPLOYEE" // Own records only
)

// ParseRole maps a claim value onto the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleLead:
		return RoleLead, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// User is the read model of the user-management collaborator.
type User struct {
	ID           string
	FullName     string
	MobileNumber *string
	Role         Role
	TeamID       *string
	IsActive     bool
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   Role
}
