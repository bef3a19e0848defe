package config

import (
	"context"
	"log/slog"
)

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == TransportSSE {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: backend.base_url", "value", s.Backend.BaseURL)
	if s.Backend.Timeout > 0 {
		logger.InfoContext(ctx, "Config: backend.timeout", "value", s.Backend.Timeout)
	}

	logger.InfoContext(ctx, "Config: catalog.page_size", "value", s.Catalog.PageSize)
	logger.InfoContext(ctx, "Config: catalog.visible_pages", "value", s.Catalog.VisiblePages)
	logger.InfoContext(ctx, "Config: catalog.compact_width", "value", s.Catalog.CompactWidth)
	logger.InfoContext(ctx, "Config: catalog.preload", "value", s.Catalog.Preload)
	if s.Catalog.Preload {
		logger.InfoContext(ctx, "Config: catalog.max_parallel_loads", "value", s.Catalog.MaxParallelLoads)
	}
}

// SettingsLogValue returns a slog.Value for Settings
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.Group("backend",
			slog.String("base_url", s.Backend.BaseURL),
			slog.Duration("timeout", s.Backend.Timeout),
		),
		slog.Group("catalog",
			slog.Int("page_size", s.Catalog.PageSize),
			slog.Int("visible_pages", s.Catalog.VisiblePages),
			slog.Int("compact_width", s.Catalog.CompactWidth),
			slog.Int("max_parallel_loads", s.Catalog.MaxParallelLoads),
			slog.Bool("preload", s.Catalog.Preload),
		),
	)
}
