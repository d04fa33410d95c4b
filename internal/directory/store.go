// Package directory maintains the searchable projection of user identities
// and resolves free-text queries against it.
package directory

import (
	"context"

	"grocery-share/internal/models"
)

// Store is the persistence surface of the Directory Index. Reads are only
// exposed through the Resolver.
type Store interface {
	// Upsert merges the identity's fields into the record keyed by UID,
	// creating it if absent. Fields the caller left nil never clobber
	// values already stored.
	Upsert(ctx context.Context, ident *models.Identity) error

	// FindByEmail returns identities whose stored lowercase email equals
	// email exactly.
	FindByEmail(ctx context.Context, email string, limit int) ([]models.Identity, error)

	// FindByNamePrefix returns identities whose display_name_lower starts
	// with prefix, in lexicographic order. Prefix-only: the index does not
	// support substring search.
	FindByNamePrefix(ctx context.Context, prefix string, limit int) ([]models.Identity, error)
}
