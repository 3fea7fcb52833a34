package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("DB_TIMEOUT", "")
	t.Setenv("SWAGGER_HOST", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Empty(t, cfg.SwaggerHost)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://app.roomlink.ma, https://admin.roomlink.ma")
	t.Setenv("DB_TIMEOUT", "2s")
	t.Setenv("SWAGGER_HOST", "api.roomlink.ma")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, []string{"https://app.roomlink.ma", "https://admin.roomlink.ma"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
	assert.Equal(t, "api.roomlink.ma", cfg.SwaggerHost)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("DB_TIMEOUT", "not-a-duration")

	assert.Equal(t, 5*time.Second, Load().DBTimeout)
}
