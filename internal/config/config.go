package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL          string
	RedisAddr            string
	AdminToken           string
	PublicBaseURL        string
	CorsOrigins          []string
	ResolveTimeoutMillis int
	CacheTTLSeconds      int
	ReconcileSeconds     int
	VerifyTimeoutSeconds int
	Development          bool
}

func Load() Config {
	return Config{
		DatabaseURL:          mustEnv("DATABASE_URL"),
		RedisAddr:            envOr("REDIS_ADDR", ""),
		AdminToken:           mustEnv("ADMIN_TOKEN"),
		PublicBaseURL:        envOr("PUBLIC_BASE_URL", "https://seopages.app"),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
		ResolveTimeoutMillis: envOrInt("RESOLVE_TIMEOUT_MS", 2000),
		CacheTTLSeconds:      envOrInt("CACHE_TTL_SECONDS", 60),
		ReconcileSeconds:     envOrInt("RECONCILE_INTERVAL_SECONDS", 300),
		VerifyTimeoutSeconds: envOrInt("VERIFY_TIMEOUT_SECONDS", 10),
		Development:          envOr("APP_ENV", "production") == "development",
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
