// Package identity fronts the external identity provider: account storage,
// the authoritative lookup-by-email, and sign-in change notification.
package identity

import (
	"context"

	"grocery-share/internal/models"
)

// Provider is the authoritative identity lookup used by the resolver's
// fallback path. It answers from the authentication records themselves, so
// it can find identities that exist but have not yet been written to the
// directory projection.
type Provider interface {
	// LookupByEmail returns the identity registered under the exact
	// (lowercased) email, or apperr.ErrNotFound.
	LookupByEmail(ctx context.Context, email string) (*models.Identity, error)
}

// Accounts is the storage surface of the identity provider itself. Only the
// auth layer writes to it.
type Accounts interface {
	Provider

	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByUID(ctx context.Context, uid string) (*models.Account, error)

	// List pages through all accounts ordered by uid, for administrative
	// seeding of the directory. afterUID is exclusive; empty starts from
	// the beginning.
	List(ctx context.Context, afterUID string, limit int) ([]models.Account, error)
}
