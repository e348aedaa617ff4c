// Package store provides tenant-partitioned user storage.
package store

import (
	"context"

	"github.com/devrev/userdir/internal/model"
)

// UserStore is the storage contract for the user directory. Every operation
// is scoped to a single tenant partition; a record whose id matches but whose
// tenant differs behaves exactly like a record that does not exist.
type UserStore interface {
	// Create generates a fresh id, appends the user to the tenant's
	// partition and returns the stored record
	Create(ctx context.Context, tenantID, name string, email *string, age *int) (*model.User, error)
	// List returns the tenant's users in insertion order; an unknown
	// tenant yields an empty slice, not an error
	List(ctx context.Context, tenantID string) ([]*model.User, error)
	// FindByID scans the tenant's partition only
	FindByID(ctx context.Context, tenantID, id string) (*model.User, error)
	// Update merges the patch into the record: present fields overwrite,
	// absent fields are untouched, id and tenant never change
	Update(ctx context.Context, tenantID, id string, patch model.UserPatch) (*model.User, error)
	// Delete removes the record permanently; its id becomes a gravestone
	Delete(ctx context.Context, tenantID, id string) error
	// Count reports the size of a tenant's partition
	Count(tenantID string) int
	// Reset clears every partition. Explicit test/administrative action.
	Reset()
}
