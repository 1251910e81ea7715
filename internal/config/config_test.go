package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "http://localhost:8000", cfg.App.BaseURL)
	assert.Equal(t, "migrations", cfg.App.MigrationsDir)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 1025, cfg.SMTP.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_PORT", "9999")
	t.Setenv("APP_BASE_URL", "https://newsletter.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, "https://newsletter.example.com", cfg.App.BaseURL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.Redis.Enabled)
}

func TestValidate_ProductionRequiresSMTPCredentials(t *testing.T) {
	cfg := &Config{
		App:  AppConfig{Environment: "production", BaseURL: "https://newsletter.example.com"},
		SMTP: SMTPConfig{Username: "", Password: ""},
	}

	assert.Error(t, cfg.Validate())

	cfg.SMTP.Username = "smtp-user"
	cfg.SMTP.Password = "smtp-pass"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_BaseURLRequired(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "development", BaseURL: ""}}

	assert.Error(t, cfg.Validate())
}

func TestLoadDatabaseConfig_Defaults(t *testing.T) {
	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "newsletter", cfg.DBName)
	assert.Equal(t, int32(25), cfg.MaxConns)
}

func TestLoadDatabaseConfig_InvalidPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := LoadDatabaseConfig()
	assert.Error(t, err)
}
