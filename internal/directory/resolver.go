package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"grocery-share/internal/apperr"
	"grocery-share/internal/identity"
	"grocery-share/internal/models"
)

const (
	// DefaultLimit applies when the caller does not ask for one.
	DefaultLimit = 10
	// MaxLimit is the hard ceiling on results, whatever the caller requests.
	// Defensive bound against unindexed scans returning unbounded data.
	MaxLimit = 20
)

// Resolver finds candidate identities for a free-text query, in strict
// priority order: exact email match, then display-name prefix match, then —
// only for email-shaped queries with zero hits — a direct identity-provider
// lookup. The last step covers the race between first sign-in and directory
// population.
type Resolver struct {
	store    Store
	provider identity.Provider
}

func NewResolver(store Store, provider identity.Provider) *Resolver {
	return &Resolver{store: store, provider: provider}
}

// Resolve returns sanitized candidates for query, at most limit (capped at
// MaxLimit). Empty or whitespace-only queries return nothing without
// touching storage. callerUID must be a verified identity; user search is
// itself sensitive.
func (r *Resolver) Resolve(ctx context.Context, callerUID, query string, limit int) ([]models.ResolvedUser, error) {
	if callerUID == "" {
		return nil, fmt.Errorf("%w: resolve requires a verified caller identity", apperr.ErrUnauthenticated)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.ResolvedUser{}, nil
	}

	var results []models.ResolvedUser
	seen := make(map[string]bool)

	// 1) exact email match: highest trust, appended first
	byEmail, err := r.store.FindByEmail(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	for _, ident := range byEmail {
		if !seen[ident.UID] {
			seen[ident.UID] = true
			results = append(results, sanitize(ident))
		}
	}

	// 2) prefix match on display_name_lower, deduplicated against step 1
	if len(results) < limit {
		byName, err := r.store.FindByNamePrefix(ctx, q, limit-len(results))
		if err != nil {
			return nil, err
		}
		for _, ident := range byName {
			if !seen[ident.UID] {
				seen[ident.UID] = true
				results = append(results, sanitize(ident))
			}
		}
	}

	// 3) provider fallback: the identity may exist in auth but not yet in
	// the directory projection
	if len(results) == 0 && looksLikeEmail(q) {
		ident, err := r.provider.LookupByEmail(ctx, q)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			// not registered anywhere, legitimately empty
		case err != nil:
			return nil, err
		default:
			results = append(results, sanitize(*ident))
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func sanitize(ident models.Identity) models.ResolvedUser {
	return models.ResolvedUser{
		UID:         ident.UID,
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
	}
}

// looksLikeEmail reports whether q contains exactly one '@' with
// non-whitespace on both sides.
func looksLikeEmail(q string) bool {
	if strings.Count(q, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(q, "@")
	if local == "" || domain == "" {
		return false
	}
	return !strings.ContainsFunc(local, unicode.IsSpace) &&
		!strings.ContainsFunc(domain, unicode.IsSpace)
}
