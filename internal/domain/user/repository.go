package user

import "context"

// Repository persists user rows keyed by external identity.
type Repository interface {
	// CreateIfAbsent inserts a row for the external identity unless one
	// already exists; the existing row is returned untouched either way.
	CreateIfAbsent(ctx context.Context, externalID, email string) (*User, error)
	// FindByExternalID returns the mapped user, or nil when no row exists.
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
}
