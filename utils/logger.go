package utils

import (
	"log/slog"
	"os"
	"strings"

	"github.com/ta9iBarkat/ecommerce-platform/config"
)

// NewLogger builds the service-wide structured JSON logger.
func NewLogger(cfg *config.Config) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})

	logger := slog.New(h).With(
		"service", "ecommerce-platform",
		"env", cfg.Env,
	)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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
