package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "nonexistent.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "./data/app.db", cfg.Database.Path)
	assert.Equal(t, "https://fakepayment.onrender.com", cfg.Payment.BaseURL)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "nonexistent.yaml")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("FAKE_PAYMENT_API_URL", "http://localhost:9999")
	t.Setenv("RECAPTCHA_SECRET_KEY", "rc-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "root", cfg.Admin.Username)
	assert.Equal(t, "http://localhost:9999", cfg.Payment.BaseURL)
	assert.Equal(t, "rc-secret", cfg.Recaptcha.SecretKey)
}

func TestLoad_InvalidPortIgnored(t *testing.T) {
	t.Setenv("CONFIG_PATH", "nonexistent.yaml")
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}
