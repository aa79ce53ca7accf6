package config

import (
	"os"
	"time"
)

// Config collects every knob the service reads from the environment.
type Config struct {
	Addr      string
	DBDriver  string // "mysql" or "sqlite"
	DSN       string
	JWTSecret string

	GeminiAPIKey    string
	GeminiModel     string
	BriefingTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Addr:            getenv("ADDR", ":8000"),
		DBDriver:        getenv("DB_DRIVER", "mysql"),
		DSN:             getenv("DB_DSN", "admin:12345678@tcp(127.0.0.1:3306)/urminedb?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:       getenv("JWT_SECRET", "supersecretkey"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		BriefingTimeout: 60 * time.Second,
	}
	if v := os.Getenv("BRIEFING_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.BriefingTimeout = d
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
