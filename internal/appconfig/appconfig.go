// Package appconfig reads the CLI environment, optionally from a .env file.
package appconfig

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all CLI configuration loaded from environment variables.
type Config struct {
	LogMode string

	CatalogPath  string
	DefaultsPath string
	DBPath       string

	AIBaseURL string
	AIModel   string
	AIAPIKey  string
	AITimeout time.Duration
}

// AIEnabled reports whether the remote extractor is configured.
func (c *Config) AIEnabled() bool {
	return c.AIBaseURL != "" && c.AIModel != ""
}

// Load reads env files (".env" when none are given) and returns the
// populated Config. envLoaded is false when no file could be read; system
// environment variables still apply and always win over file values.
func Load(files ...string) (cfg *Config, envLoaded bool) {
	envLoaded = godotenv.Load(files...) == nil

	return &Config{
		LogMode: getEnv("MATSCHED_LOG_MODE", "dev"),

		CatalogPath:  getEnv("MATSCHED_CATALOG_PATH", ""),
		DefaultsPath: getEnv("MATSCHED_DEFAULTS_PATH", ""),
		DBPath:       getEnv("MATSCHED_DB_PATH", ""),

		AIBaseURL: getEnv("MATSCHED_AI_BASE_URL", ""),
		AIModel:   getEnv("MATSCHED_AI_MODEL", ""),
		AIAPIKey:  getEnv("MATSCHED_AI_API_KEY", ""),
		AITimeout: time.Duration(getEnvInt("MATSCHED_AI_TIMEOUT_MS", 30000)) * time.Millisecond,
	}, envLoaded
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
