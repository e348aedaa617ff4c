package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devrev/userdir/internal/apperrors"
)

func TestParseRole(t *testing.T) {
	t.Run("valid roles", func(t *testing.T) {
		for token, want := range map[string]Role{
			"admin":  RoleAdmin,
			"editor": RoleEditor,
			"viewer": RoleViewer,
		} {
			role, err := ParseRole(token)
			assert.NoError(t, err)
			assert.Equal(t, want, role)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		role, err := ParseRole("ADMIN")
		assert.NoError(t, err)
		assert.Equal(t, RoleAdmin, role)

		role, err = ParseRole("Editor")
		assert.NoError(t, err)
		assert.Equal(t, RoleEditor, role)
	})

	t.Run("empty token is unauthenticated", func(t *testing.T) {
		_, err := ParseRole("")
		assert.Equal(t, apperrors.CodeMissingRole, apperrors.CodeOf(err))
	})

	t.Run("unrecognized token is invalid", func(t *testing.T) {
		_, err := ParseRole("superuser")
		assert.Equal(t, apperrors.CodeInvalidRole, apperrors.CodeOf(err))
	})
}

func TestAuthorize(t *testing.T) {
	t.Run("member of allowed set", func(t *testing.T) {
		role, err := Authorize(RoleEditor, RoleAdmin, RoleEditor)
		assert.NoError(t, err)
		assert.Equal(t, RoleEditor, role)
	})

	t.Run("not a member", func(t *testing.T) {
		_, err := Authorize(RoleViewer, RoleAdmin, RoleEditor)
		assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("parse failure wins over authorization", func(t *testing.T) {
		_, err := RequireRole("", RoleAdmin)
		assert.Equal(t, apperrors.CodeMissingRole, apperrors.CodeOf(err))

		_, err = RequireRole("root", RoleAdmin)
		assert.Equal(t, apperrors.CodeInvalidRole, apperrors.CodeOf(err))
	})

	t.Run("valid but disallowed", func(t *testing.T) {
		_, err := RequireRole("viewer", RoleAdmin)
		assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
	})
}

func TestResolveTenant(t *testing.T) {
	tenantID, err := ResolveTenant("tenant-1")
	assert.NoError(t, err)
	assert.Equal(t, "tenant-1", tenantID)

	_, err = ResolveTenant("")
	assert.Equal(t, apperrors.CodeMissingTenant, apperrors.CodeOf(err))
}
