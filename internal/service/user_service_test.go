package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devrev/userdir/internal/apperrors"
	"github.com/devrev/userdir/internal/model"
	"github.com/devrev/userdir/internal/store"
)

// MockUserStore is a mock implementation of store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, tenantID, name string, email *string, age *int) (*model.User, error) {
	args := m.Called(ctx, tenantID, name, email, age)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context, tenantID string) ([]*model.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, tenantID, id string) (*model.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, tenantID, id string, patch model.UserPatch) (*model.User, error) {
	args := m.Called(ctx, tenantID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserStore) Count(tenantID string) int {
	args := m.Called(tenantID)
	return args.Int(0)
}

func (m *MockUserStore) Reset() {
	m.Called()
}

func newMemoryService() (*UserService, *store.MemoryStore) {
	s := store.NewMemoryStore(zap.NewNop())
	return NewUserService(s, nil, zap.NewNop()), s
}

func TestUserService_Create_RBAC(t *testing.T) {
	ctx := context.Background()
	body := model.CreateUser{Name: "John Doe"}

	t.Run("admin may create", func(t *testing.T) {
		svc, _ := newMemoryService()

		user, err := svc.Create(ctx, "admin", "tenant-1", body)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", user.Name)
		assert.Equal(t, "tenant-1", user.TenantID)
	})

	t.Run("editor and viewer are forbidden and never reach the store", func(t *testing.T) {
		for _, role := range []string{"editor", "viewer"} {
			mockStore := new(MockUserStore)
			svc := NewUserService(mockStore, nil, zap.NewNop())

			_, err := svc.Create(ctx, role, "tenant-1", body)
			assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
			mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("missing role is unauthenticated", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.Create(ctx, "", "tenant-1", body)
		assert.Equal(t, apperrors.CodeMissingRole, apperrors.CodeOf(err))
	})

	t.Run("unrecognized role is a bad request", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.Create(ctx, "owner", "tenant-1", body)
		assert.Equal(t, apperrors.CodeInvalidRole, apperrors.CodeOf(err))
	})

	t.Run("role is checked before tenant", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.Create(ctx, "", "", body)
		assert.Equal(t, apperrors.CodeMissingRole, apperrors.CodeOf(err))
	})

	t.Run("missing tenant", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.Create(ctx, "admin", "", body)
		assert.Equal(t, apperrors.CodeMissingTenant, apperrors.CodeOf(err))
	})

	t.Run("empty name fails regardless of role", func(t *testing.T) {
		svc, s := newMemoryService()

		_, err := svc.Create(ctx, "admin", "tenant-1", model.CreateUser{})
		assert.Equal(t, apperrors.CodeEmptyName, apperrors.CodeOf(err))
		assert.Equal(t, 0, s.Count("tenant-1"))
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("any valid role may list", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.Create(ctx, "admin", "tenant-1", model.CreateUser{Name: "Alice"})
		require.NoError(t, err)

		for _, role := range []string{"admin", "editor", "viewer"} {
			users, err := svc.List(ctx, role, "tenant-1")
			require.NoError(t, err)
			assert.Len(t, users, 1)
		}
	})

	t.Run("a valid role is still required", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.List(ctx, "", "tenant-1")
		assert.Equal(t, apperrors.CodeMissingRole, apperrors.CodeOf(err))

		_, err = svc.List(ctx, "guest", "tenant-1")
		assert.Equal(t, apperrors.CodeInvalidRole, apperrors.CodeOf(err))
	})

	t.Run("tenant is resolved before the role", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.List(ctx, "", "")
		assert.Equal(t, apperrors.CodeMissingTenant, apperrors.CodeOf(err))
	})

	t.Run("empty tenant partition lists as empty", func(t *testing.T) {
		svc, _ := newMemoryService()

		users, err := svc.List(ctx, "viewer", "tenant-9")
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestUserService_Update_RBAC(t *testing.T) {
	ctx := context.Background()

	t.Run("admin and editor may update", func(t *testing.T) {
		svc, _ := newMemoryService()

		user, err := svc.Create(ctx, "admin", "tenant-1", model.CreateUser{Name: "Alice"})
		require.NoError(t, err)

		for _, role := range []string{"admin", "editor"} {
			updated, err := svc.Update(ctx, role, "tenant-1", user.ID, model.UserPatch{Name: model.Some("Alicia")})
			require.NoError(t, err)
			assert.Equal(t, "Alicia", updated.Name)
		}
	})

	t.Run("viewer is forbidden and never reaches the store", func(t *testing.T) {
		mockStore := new(MockUserStore)
		svc := NewUserService(mockStore, nil, zap.NewNop())

		_, err := svc.Update(ctx, "viewer", "tenant-1", "some-id", model.UserPatch{})
		assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
		mockStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown id within tenant is not found", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.Update(ctx, "editor", "tenant-1", "no-such-id", model.UserPatch{Name: model.Some("x")})
		assert.Equal(t, apperrors.CodeUserNotFound, apperrors.CodeOf(err))
	})
}

func TestUserService_Delete_RBAC(t *testing.T) {
	ctx := context.Background()

	t.Run("admin may delete, repeat is not found", func(t *testing.T) {
		svc, s := newMemoryService()

		user, err := svc.Create(ctx, "admin", "tenant-1", model.CreateUser{Name: "Alice"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "admin", "tenant-1", user.ID))
		assert.Equal(t, 0, s.Count("tenant-1"))

		err = svc.Delete(ctx, "admin", "tenant-1", user.ID)
		assert.Equal(t, apperrors.CodeUserNotFound, apperrors.CodeOf(err))
	})

	t.Run("editor and viewer are forbidden and never reach the store", func(t *testing.T) {
		for _, role := range []string{"editor", "viewer"} {
			mockStore := new(MockUserStore)
			svc := NewUserService(mockStore, nil, zap.NewNop())

			err := svc.Delete(ctx, role, "tenant-1", "some-id")
			assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
			mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		}
	})
}

func TestUserService_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	alice, err := svc.Create(ctx, "admin", "t1", model.CreateUser{Name: "Alice"})
	require.NoError(t, err)

	users, err := svc.List(ctx, "viewer", "t2")
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = svc.Update(ctx, "admin", "t2", alice.ID, model.UserPatch{Name: model.Some("Eve")})
	assert.Equal(t, apperrors.CodeUserNotFound, apperrors.CodeOf(err))

	err = svc.Delete(ctx, "admin", "t2", alice.ID)
	assert.Equal(t, apperrors.CodeUserNotFound, apperrors.CodeOf(err))

	users, err = svc.List(ctx, "viewer", "t1")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
}
