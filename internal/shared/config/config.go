package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string
	SessionSecret   string
	SessionTTL      time.Duration
	AppBaseURL      string
	AWSRegion       string
	EmailFrom       string
	EmailEnabled    bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	secret := os.Getenv("SESSION_SECRET")

	if env == "production" {
		if dbURL == "" {
			log.Printf("DATABASE_URL is required in production")
		}
		if secret == "" {
			log.Printf("SESSION_SECRET is required in production")
		}
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:     dbURL,
		Env:             env,
		SessionSecret:   secret,
		SessionTTL:      getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:3000"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		EmailFrom:       getEnv("EMAIL_FROM", "noreply@fna.local"),
		EmailEnabled:    getEnv("EMAIL_ENABLED", "false") == "true",
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
