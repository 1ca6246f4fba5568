package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setS3Env sets the storage variables every configuration needs.
func setS3Env(t *testing.T) {
	t.Helper()
	t.Setenv("S3_BUCKET_NAME", "campuscraft-test")
	t.Setenv("S3_ENDPOINT", "http://127.0.0.1:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "test-access")
	t.Setenv("S3_SECRET_ACCESS_KEY", "test-secret")
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ASSISTANT_API_KEY", "")
	t.Setenv("ASSISTANT_MODEL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.Empty(t, cfg.AssistantAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.AssistantModel)
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = LoadConfig()
	assert.Error(t, err, "DATABASE_URL must still be required")

	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/campuscraft")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.JWTSecret)
}

func TestLoadConfigRejectsBadPorts(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "development")

	t.Setenv("PORT", "not-a-number")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	assert.Error(t, err, "privileged ports are rejected")

	t.Setenv("PORT", "9000")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
}

func TestLoadConfigParsesAllowedOrigins(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfigRequiresStorageSettings(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("S3_BUCKET_NAME", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
