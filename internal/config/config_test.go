package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "MAX_RESUMES_PER_OWNER", "RESUME_CACHE_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.MaxResumesPerOwner)
	assert.Equal(t, 10*time.Minute, cfg.ResumeCacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("MAX_RESUMES_PER_OWNER", "5")
	t.Setenv("RESUME_CACHE_TTL", "90s")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5, cfg.MaxResumesPerOwner)
	assert.Equal(t, 90*time.Second, cfg.ResumeCacheTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("TEST_INT", "three")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_SECONDS", "30")

	assert.Equal(t, 7, getEnvAsInt("TEST_INT", 7))
	assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, 30*time.Second, getEnvAsDuration("TEST_SECONDS", time.Minute))
}
