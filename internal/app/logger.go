package app

import (
	"log/slog"
	"os"

	"painel-social/internal/config"
	"painel-social/internal/logx"
	"painel-social/internal/telemetry"
)

// NewLogger writes JSON lines to stdout, stamped with the active trace and span ids.
func NewLogger(cfg *config.Config) logx.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return logx.NewSlogAdapter(slog.New(telemetry.NewTraceHandler(h)))
}
