package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string
	Port        string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	FrontendURL string
	LogLevel    string

	// Resume settings
	MaxResumesPerOwner int
	ResumeCacheTTL     time.Duration
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("No .env file found")
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		MaxResumesPerOwner: getEnvAsInt("MAX_RESUMES_PER_OWNER", 3),
		ResumeCacheTTL:     getEnvAsDuration("RESUME_CACHE_TTL", 10*time.Minute),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer in environment, using default")
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("90s", "15m") or a plain number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	log.Warn().Str("key", key).Str("value", value).Msg("invalid duration in environment, using default")
	return defaultValue
}
