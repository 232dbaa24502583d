package app

import (
	"github.com/yungbote/folio-backend/internal/http/handlers"
	"github.com/yungbote/folio-backend/internal/platform/logger"
)

type Handlers struct {
	Generate *handlers.GenerateHandler
	Feedback *handlers.FeedbackHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Generate: handlers.NewGenerateHandler(log, svcs.Layouts, svcs.RateLimits),
		Feedback: handlers.NewFeedbackHandler(log, svcs.Feedback),
		Health:   handlers.NewHealthHandler(),
	}
}
