package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/folio-backend/internal/http/response"
	"github.com/yungbote/folio-backend/internal/platform/logger"
)

// Recovery converts any panic into a generic 500 JSON body. Fallback layouts
// only happen inside the layout service; at this outer layer an unexpected
// failure is just an error.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				if log != nil {
					log.Error("panic recovered", "path", c.Request.URL.Path, "panic", rec)
				}
				response.Error(c, http.StatusInternalServerError, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
