package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestNormalizeDerivesDisplayNameLower(t *testing.T) {
	ident := Identity{UID: "u1", DisplayName: strptr("Nicole Smith")}
	ident.Normalize()

	require.NotNil(t, ident.DisplayNameLower)
	assert.Equal(t, "nicole smith", *ident.DisplayNameLower)
	assert.Equal(t, "Nicole Smith", *ident.DisplayName)
}

func TestNormalizeClearsLowerWhenNameAbsent(t *testing.T) {
	stale := "stale"
	ident := Identity{UID: "u1", DisplayNameLower: &stale}
	ident.Normalize()

	assert.Nil(t, ident.DisplayName)
	assert.Nil(t, ident.DisplayNameLower)
}

func TestNormalizeResyncsStaleLower(t *testing.T) {
	// A rename must rederive the lower field; a stale value silently
	// breaks prefix search.
	ident := Identity{UID: "u1", DisplayName: strptr("Renamed"), DisplayNameLower: strptr("original")}
	ident.Normalize()

	require.NotNil(t, ident.DisplayNameLower)
	assert.Equal(t, "renamed", *ident.DisplayNameLower)
}

func TestNormalizeLowercasesEmail(t *testing.T) {
	ident := Identity{UID: "u1", Email: strptr("  Nic@Example.COM ")}
	ident.Normalize()

	require.NotNil(t, ident.Email)
	assert.Equal(t, "nic@example.com", *ident.Email)
}

func TestNormalizeDropsEmptyEmail(t *testing.T) {
	ident := Identity{UID: "u1", Email: strptr("   ")}
	ident.Normalize()

	assert.Nil(t, ident.Email)
}
