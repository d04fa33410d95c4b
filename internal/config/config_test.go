package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "grocery_share", cfg.Database.Name)
	assert.Equal(t, "7d", cfg.JWT.ExpiresIn)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "from-env")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestDatabaseURL(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "5432", Name: "n", User: "u", Password: "p"}
	assert.Equal(t, "postgres://u:p@h:5432/n", d.URL())
}
