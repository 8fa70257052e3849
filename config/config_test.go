package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BEARER_TOKEN", "secret")
	t.Setenv("SESSION_KEY", testSessionKey)
	t.Setenv("DB_URL", "postgres://localhost/dental")
}

func TestFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, BackendSQL, cfg.StoreBackend)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CorsOrigins)
	assert.Equal(t, "secret", cfg.GetBearerToken())
	assert.Equal(t, []byte(testSessionKey), cfg.SessionKey)
}

func TestFromEnv_MissingBearerToken(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BEARER_TOKEN", "")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_ShortSessionKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_KEY", "too-short")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_SQLRequiresDBURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_URL", "")
	t.Setenv("STORE_BACKEND", BackendSQL)

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_LocalBackendWithoutDBURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_URL", "")
	t.Setenv("STORE_BACKEND", BackendLocal)
	t.Setenv("LOCAL_STORE_PATH", "/tmp/clinic.db")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/clinic.db", cfg.LocalStorePath)
}

func TestFromEnv_UnknownBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_BACKEND", "browser")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("RATE_LIMIT_RPS", "fast")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, float64(15), cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
}
