// Package auth implements the role gate and tenant resolver. Both operate on
// header-derived tokens threaded in explicitly by the transport layer; the
// claims themselves are trusted as already authenticated upstream.
package auth

import (
	"strings"

	"github.com/devrev/userdir/internal/apperrors"
)

// Role is a validated access-control role
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole normalizes a raw role token and matches it against the closed
// role set. An absent token is unauthenticated; an unrecognized one is a
// bad request.
func ParseRole(token string) (Role, error) {
	if token == "" {
		return "", apperrors.MissingRole()
	}
	switch Role(strings.ToLower(token)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEditor:
		return RoleEditor, nil
	case RoleViewer:
		return RoleViewer, nil
	default:
		return "", apperrors.InvalidRole(token)
	}
}

// Authorize succeeds iff role is a member of allowed
func Authorize(role Role, allowed ...Role) (Role, error) {
	for _, a := range allowed {
		if role == a {
			return role, nil
		}
	}
	return "", apperrors.Forbidden()
}

// RequireRole parses the raw token and checks it against allowed in one step
func RequireRole(token string, allowed ...Role) (Role, error) {
	role, err := ParseRole(token)
	if err != nil {
		return "", err
	}
	return Authorize(role, allowed...)
}
