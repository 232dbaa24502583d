package app

import (
	"github.com/yungbote/folio-backend/internal/platform/logger"
	"github.com/yungbote/folio-backend/internal/services"
)

type Services struct {
	RateLimits services.RateLimitService
	Intents    services.IntentService
	Links      services.LinkValidator
	Layouts    services.LayoutService
	Feedback   services.FeedbackService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients) Services {
	log.Info("Wiring services...")

	rateLimits := services.NewRateLimitService(log, clients.Store, cfg.FeedbackWindow, cfg.GenerateWindow, cfg.GenerateMaxRequests)
	intents := services.NewIntentService(log, clients.Store, clients.AI)
	links := services.NewLinkValidator(log, cfg.LinkCheckTimeout)
	layouts := services.NewLayoutService(log, clients.Store, clients.AI, intents, links, cfg.LayoutCacheTTL)
	feedback := services.NewFeedbackService(log, clients.Store, rateLimits, layouts)

	return Services{
		RateLimits: rateLimits,
		Intents:    intents,
		Links:      links,
		Layouts:    layouts,
		Feedback:   feedback,
	}
}
