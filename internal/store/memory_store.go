package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devrev/userdir/internal/apperrors"
	"github.com/devrev/userdir/internal/model"
)

// MemoryStore implements UserStore with a tenant-keyed map of insertion-ordered
// slices. A single RWMutex serializes mutations across all tenants so that
// racing updates and deletes on the same id resolve deterministically; reads
// share the read lock and never observe a torn record. The store lives for the
// whole process and holds the only references to its records.
type MemoryStore struct {
	mu      sync.RWMutex
	tenants map[string][]*model.User
	logger  *zap.Logger
}

// NewMemoryStore creates an empty in-memory user store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		tenants: make(map[string][]*model.User),
		logger:  logger,
	}
}

// Create implements UserStore
func (s *MemoryStore) Create(ctx context.Context, tenantID, name string, email *string, age *int) (*model.User, error) {
	if name == "" {
		return nil, apperrors.EmptyName()
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Age:      age,
		TenantID: tenantID,
	}

	s.mu.Lock()
	s.tenants[tenantID] = append(s.tenants[tenantID], user)
	s.mu.Unlock()

	s.logger.Debug("user created",
		zap.String("tenant_id", tenantID),
		zap.String("user_id", user.ID))

	return user.Clone(), nil
}

// List implements UserStore
func (s *MemoryStore) List(ctx context.Context, tenantID string) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := s.tenants[tenantID]
	out := make([]*model.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Clone())
	}
	return out, nil
}

// FindByID implements UserStore
func (s *MemoryStore) FindByID(ctx context.Context, tenantID, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.find(tenantID, id); u != nil {
		return u.Clone(), nil
	}
	return nil, apperrors.UserNotFound()
}

// Update implements UserStore
func (s *MemoryStore) Update(ctx context.Context, tenantID, id string, patch model.UserPatch) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.find(tenantID, id)
	if user == nil {
		return nil, apperrors.UserNotFound()
	}

	if patch.Name.Set {
		if patch.Name.Value != nil {
			user.Name = *patch.Name.Value
		} else {
			user.Name = ""
		}
	}
	if patch.Email.Set {
		user.Email = patch.Email.Value
	}
	if patch.Age.Set {
		user.Age = patch.Age.Value
	}

	s.logger.Debug("user updated",
		zap.String("tenant_id", tenantID),
		zap.String("user_id", id))

	return user.Clone(), nil
}

// Delete implements UserStore
func (s *MemoryStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.tenants[tenantID]
	for i, u := range users {
		if u.ID == id {
			s.tenants[tenantID] = append(users[:i], users[i+1:]...)
			s.logger.Debug("user deleted",
				zap.String("tenant_id", tenantID),
				zap.String("user_id", id))
			return nil
		}
	}
	return apperrors.UserNotFound()
}

// Count implements UserStore
func (s *MemoryStore) Count(tenantID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tenants[tenantID])
}

// Reset implements UserStore
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	s.tenants = make(map[string][]*model.User)
	s.mu.Unlock()
}

// find scans one tenant partition; caller must hold the lock
func (s *MemoryStore) find(tenantID, id string) *model.User {
	for _, u := range s.tenants[tenantID] {
		if u.ID == id {
			return u
		}
	}
	return nil
}
