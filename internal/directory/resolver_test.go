package directory

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-share/internal/apperr"
	"grocery-share/internal/models"
)

type fakeStore struct {
	idents []models.Identity

	emailCalls  int
	prefixCalls int
}

func (s *fakeStore) Upsert(ctx context.Context, ident *models.Identity) error {
	ident.Normalize()
	for i := range s.idents {
		if s.idents[i].UID == ident.UID {
			s.idents[i] = *ident
			return nil
		}
	}
	s.idents = append(s.idents, *ident)
	return nil
}

func (s *fakeStore) FindByEmail(ctx context.Context, email string, limit int) ([]models.Identity, error) {
	s.emailCalls++
	var out []models.Identity
	for _, ident := range s.idents {
		if len(out) >= limit {
			break
		}
		if ident.Email != nil && *ident.Email == email {
			out = append(out, ident)
		}
	}
	return out, nil
}

func (s *fakeStore) FindByNamePrefix(ctx context.Context, prefix string, limit int) ([]models.Identity, error) {
	s.prefixCalls++
	var out []models.Identity
	for _, ident := range s.idents {
		if len(out) >= limit {
			break
		}
		if ident.DisplayNameLower != nil && strings.HasPrefix(*ident.DisplayNameLower, prefix) {
			out = append(out, ident)
		}
	}
	return out, nil
}

type fakeProvider struct {
	byEmail map[string]*models.Identity
	calls   int
}

func (p *fakeProvider) LookupByEmail(ctx context.Context, email string) (*models.Identity, error) {
	p.calls++
	if ident, ok := p.byEmail[email]; ok {
		return ident, nil
	}
	return nil, fmt.Errorf("%w: account", apperr.ErrNotFound)
}

func ident(uid, email, name string) models.Identity {
	i := models.Identity{UID: uid}
	if email != "" {
		i.Email = &email
	}
	if name != "" {
		i.DisplayName = &name
	}
	i.Normalize()
	return i
}

func newTestResolver(idents ...models.Identity) (*Resolver, *fakeStore, *fakeProvider) {
	store := &fakeStore{idents: idents}
	provider := &fakeProvider{byEmail: map[string]*models.Identity{}}
	return NewResolver(store, provider), store, provider
}

func TestResolveRequiresCaller(t *testing.T) {
	r, _, _ := newTestResolver()

	_, err := r.Resolve(context.Background(), "", "nic", 10)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestResolveEmptyQuerySkipsStorage(t *testing.T) {
	r, store, provider := newTestResolver(ident("u1", "a@b.com", "Alice"))

	for _, q := range []string{"", "   ", "\t\n"} {
		results, err := r.Resolve(context.Background(), "caller", q, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Zero(t, store.emailCalls)
	assert.Zero(t, store.prefixCalls)
	assert.Zero(t, provider.calls)
}

func TestResolveExactEmailComesFirst(t *testing.T) {
	// "a@b.com" is also a display-name prefix for the second identity, so
	// both steps can match; the email hit must lead.
	r, _, _ := newTestResolver(
		ident("u1", "a@b.com", "Someone Else"),
		ident("u2", "other@x.com", "a@b.comical"),
	)

	results, err := r.Resolve(context.Background(), "caller", "a@b.com", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "u1", results[0].UID)
	assert.Equal(t, "u2", results[1].UID)
}

func TestResolvePrefixMatch(t *testing.T) {
	r, _, _ := newTestResolver(
		ident("u1", "nic@x.com", "Nic"),
		ident("u2", "nicole@x.com", "Nicole"),
		ident("u3", "nicolas@x.com", "Nicolas"),
		ident("u4", "oscar@x.com", "Oscar"),
	)

	results, err := r.Resolve(context.Background(), "caller", "nic", 10)
	require.NoError(t, err)

	uids := make([]string, 0, len(results))
	for _, res := range results {
		uids = append(uids, res.UID)
	}
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, uids)
}

func TestResolveQueryIsNormalized(t *testing.T) {
	r, _, _ := newTestResolver(ident("u1", "nic@x.com", "Nicole"))

	results, err := r.Resolve(context.Background(), "caller", "  NiC  ", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "u1", results[0].UID)
}

func TestResolveDeduplicatesAcrossSteps(t *testing.T) {
	// Identity whose email equals its lowercased display name satisfies
	// both the email and the prefix step.
	r, _, _ := newTestResolver(ident("u1", "nic", "Nic"))

	results, err := r.Resolve(context.Background(), "caller", "nic", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestResolveProviderFallbackForEmailShapedQuery(t *testing.T) {
	r, _, provider := newTestResolver()
	fresh := ident("u9", "new@x.com", "Newcomer")
	provider.byEmail["new@x.com"] = &fresh

	results, err := r.Resolve(context.Background(), "caller", "new@x.com", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "u9", results[0].UID)
}

func TestResolveNoFallbackWhenDirectoryMatched(t *testing.T) {
	r, _, provider := newTestResolver(ident("u1", "a@b.com", "Alice"))

	_, err := r.Resolve(context.Background(), "caller", "a@b.com", 10)
	require.NoError(t, err)
	assert.Zero(t, provider.calls)
}

func TestResolveNoFallbackForNonEmailQuery(t *testing.T) {
	r, _, provider := newTestResolver()

	results, err := r.Resolve(context.Background(), "caller", "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, provider.calls)
}

func TestResolveCapsLimit(t *testing.T) {
	var idents []models.Identity
	for i := 0; i < 30; i++ {
		idents = append(idents, ident(
			fmt.Sprintf("u%02d", i),
			fmt.Sprintf("user%02d@x.com", i),
			fmt.Sprintf("Nic %02d", i)))
	}
	r, _, _ := newTestResolver(idents...)

	results, err := r.Resolve(context.Background(), "caller", "nic", 100)
	require.NoError(t, err)
	assert.Len(t, results, MaxLimit)
}

func TestResolveSanitizesResults(t *testing.T) {
	r, _, _ := newTestResolver(ident("u1", "a@b.com", "Alice"))

	results, err := r.Resolve(context.Background(), "caller", "a@b.com", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "u1", results[0].UID)
	require.NotNil(t, results[0].Email)
	assert.Equal(t, "a@b.com", *results[0].Email)
	require.NotNil(t, results[0].DisplayName)
	assert.Equal(t, "Alice", *results[0].DisplayName)
}

func TestLooksLikeEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.com":     true,
		"a@b":         true,
		"@b.com":      false,
		"a@":          false,
		"a b@c.com":   false,
		"a@b@c.com":   false,
		"plain-name":  false,
		"nic@x.com ":  true, // resolver trims before checking
	}
	for q, want := range cases {
		assert.Equal(t, want, looksLikeEmail(strings.TrimSpace(q)), "query %q", q)
	}
}
