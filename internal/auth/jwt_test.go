package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-share/internal/config"
	"grocery-share/internal/models"
)

func testAccount() *models.Account {
	return &models.Account{UID: "u1", Email: "a@b.com"}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager(config.JWTConfig{Secret: "test-secret", ExpiresIn: "1h"})

	token, err := m.GenerateToken(testAccount())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	m1 := NewJWTManager(config.JWTConfig{Secret: "secret-one", ExpiresIn: "1h"})
	m2 := NewJWTManager(config.JWTConfig{Secret: "secret-two", ExpiresIn: "1h"})

	token, err := m1.GenerateToken(testAccount())
	require.NoError(t, err)

	_, err = m2.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager(config.JWTConfig{Secret: "test-secret", ExpiresIn: "-1h"})

	token, err := m.GenerateToken(testAccount())
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewJWTManager(config.JWTConfig{Secret: "test-secret", ExpiresIn: "1h"})

	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestExpiresInDayShorthand(t *testing.T) {
	m := NewJWTManager(config.JWTConfig{Secret: "s", ExpiresIn: "7d"})
	assert.Equal(t, 7*24*time.Hour, m.expiresIn)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
