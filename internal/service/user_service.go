// Package service orchestrates directory operations: each one gates the
// request on role and tenant, validates the payload and delegates to the
// store.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/devrev/userdir/internal/auth"
	"github.com/devrev/userdir/internal/metrics"
	"github.com/devrev/userdir/internal/model"
	"github.com/devrev/userdir/internal/store"
)

// Per-operation allowed role sets. Fixed policy, not configuration.
var (
	createRoles = []auth.Role{auth.RoleAdmin}
	updateRoles = []auth.Role{auth.RoleAdmin, auth.RoleEditor}
	deleteRoles = []auth.Role{auth.RoleAdmin}
)

// UserService implements the directory operations over a UserStore
type UserService struct {
	store   store.UserStore
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userStore store.UserStore, m *metrics.Metrics, logger *zap.Logger) *UserService {
	return &UserService{
		store:   userStore,
		metrics: m,
		logger:  logger,
	}
}

// Create adds a user to the tenant's partition. Admin only; the role gate
// runs before tenant resolution.
func (s *UserService) Create(ctx context.Context, roleToken, tenantToken string, req model.CreateUser) (*model.User, error) {
	if _, err := auth.RequireRole(roleToken, createRoles...); err != nil {
		return nil, err
	}
	tenantID, err := auth.ResolveTenant(tenantToken)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, tenantID, req.Name, req.Email, req.Age)
	if err != nil {
		return nil, err
	}

	s.logger.Info("created user",
		zap.String("tenant_id", tenantID),
		zap.String("user_id", user.ID))
	s.recordTenantSize(tenantID)

	return user, nil
}

// List returns the tenant's users in insertion order. Any valid role may
// list; tenant resolution runs before the role check.
func (s *UserService) List(ctx context.Context, roleToken, tenantToken string) ([]*model.User, error) {
	tenantID, err := auth.ResolveTenant(tenantToken)
	if err != nil {
		return nil, err
	}
	if _, err := auth.ParseRole(roleToken); err != nil {
		return nil, err
	}

	return s.store.List(ctx, tenantID)
}

// Update merges a partial patch into an existing user. Admin or editor.
func (s *UserService) Update(ctx context.Context, roleToken, tenantToken, id string, patch model.UserPatch) (*model.User, error) {
	if _, err := auth.RequireRole(roleToken, updateRoles...); err != nil {
		return nil, err
	}
	tenantID, err := auth.ResolveTenant(tenantToken)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Update(ctx, tenantID, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("updated user",
		zap.String("tenant_id", tenantID),
		zap.String("user_id", id))

	return user, nil
}

// Delete removes a user permanently. Admin only.
func (s *UserService) Delete(ctx context.Context, roleToken, tenantToken, id string) error {
	if _, err := auth.RequireRole(roleToken, deleteRoles...); err != nil {
		return err
	}
	tenantID, err := auth.ResolveTenant(tenantToken)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	s.logger.Info("deleted user",
		zap.String("tenant_id", tenantID),
		zap.String("user_id", id))
	s.recordTenantSize(tenantID)

	return nil
}

func (s *UserService) recordTenantSize(tenantID string) {
	if s.metrics != nil {
		s.metrics.SetTenantUsers(tenantID, s.store.Count(tenantID))
	}
}
