package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tatianab/satchel/internal/models"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	ContentPath  string
	SaveDir      string
	LogFile      string
	LogLevel     slog.Level
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		ContentPath:  os.Getenv("SATCHEL_CONTENT"),
		SaveDir:      envOr("SATCHEL_SAVE_DIR", models.DefaultSaveDir),
		LogFile:      envOr("SATCHEL_LOG_FILE", "satchel.log"),
	}

	level, err := parseLevel(os.Getenv("SATCHEL_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level
	return cfg, nil
}

// RequireGeminiKey fails when no Gemini API key is configured.
func (c *Config) RequireGeminiKey() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("SATCHEL_LOG_LEVEL: unknown level %q", s)
}
