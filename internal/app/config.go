package app

import (
	"time"

	"github.com/yungbote/folio-backend/internal/platform/envutil"
	"github.com/yungbote/folio-backend/internal/platform/logger"
)

type Config struct {
	Port string

	FeedbackWindow      time.Duration
	GenerateWindow      time.Duration
	GenerateMaxRequests int

	LinkCheckTimeout time.Duration
	LayoutCacheTTL   time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:                envutil.String("PORT", "8080"),
		FeedbackWindow:      envutil.Seconds("FEEDBACK_WINDOW_SECONDS", 60*time.Second),
		GenerateWindow:      envutil.Seconds("GENERATE_WINDOW_SECONDS", 60*time.Second),
		GenerateMaxRequests: envutil.Int("GENERATE_MAX_REQUESTS", 3),
		LinkCheckTimeout:    envutil.Seconds("LINK_CHECK_TIMEOUT_SECONDS", 3*time.Second),
		LayoutCacheTTL:      envutil.Seconds("LAYOUT_CACHE_TTL_SECONDS", time.Hour),
	}
	if log != nil {
		log.Debug("config loaded",
			"port", cfg.Port,
			"feedback_window", cfg.FeedbackWindow.String(),
			"generate_window", cfg.GenerateWindow.String(),
			"generate_max_requests", cfg.GenerateMaxRequests,
		)
	}
	return cfg
}
