package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/folio-backend/internal/http/middleware"
	"github.com/yungbote/folio-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.POST("/generate", h.Generate.Generate)
		api.POST("/feedback", h.Feedback.Submit)
		api.GET("/health", h.Health.Health)
	}

	// Anything else is the static layer's problem; the API answers 404.
	return router
}
