package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server settings. Values come from the environment,
// optionally seeded from a .env file; flags in cmd/server override them.
type Config struct {
	Port        string
	FrontendURL string
	RedisURL    string
	LogLevel    string
}

func Default() Config {
	return Config{
		Port:        "8080",
		FrontendURL: "http://localhost:5173",
		LogLevel:    "info",
	}
}

// Load reads the given env files (".env" when none are named) and then the
// process environment. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.FrontendURL = getenv("FRONTEND_URL", cfg.FrontendURL)
	cfg.RedisURL = getenv("REDIS_URL", cfg.RedisURL)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	return cfg, nil
}

// Level maps LogLevel to a slog level, defaulting to info
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
