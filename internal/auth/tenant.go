package auth

import "github.com/devrev/userdir/internal/apperrors"

// ResolveTenant validates a tenant token. Tenant IDs are opaque: the only
// requirement is that one is present.
func ResolveTenant(token string) (string, error) {
	if token == "" {
		return "", apperrors.MissingTenant()
	}
	return token, nil
}
