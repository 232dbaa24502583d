package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/folio-backend/internal/http/response"
	"github.com/yungbote/folio-backend/internal/platform/apierr"
	"github.com/yungbote/folio-backend/internal/platform/logger"
	"github.com/yungbote/folio-backend/internal/services"
	"github.com/yungbote/folio-backend/internal/types"
)

type GenerateHandler struct {
	log     *logger.Logger
	layouts services.LayoutService
	limiter services.RateLimitService
}

func NewGenerateHandler(log *logger.Logger, layouts services.LayoutService, limiter services.RateLimitService) *GenerateHandler {
	return &GenerateHandler{
		log:     log.With("handler", "GenerateHandler"),
		layouts: layouts,
		limiter: limiter,
	}
}

type generateResponse struct {
	types.GeneratedLayout
	CacheKey       string                      `json:"_cacheKey"`
	VisitorContext types.VisitorContext        `json:"_visitorContext"`
	UIHints        types.UIHints               `json:"_uiHints"`
	Categorization *types.CategorizationResult `json:"_categorization,omitempty"`
	RateLimited    bool                        `json:"_rateLimited,omitempty"`
	RetryAfter     int                         `json:"_retryAfter,omitempty"`
}

// POST /api/generate
//
// Rate-limited callers are never hard-blocked: they get HTTP 200 with the
// default layout and explicit _rateLimited markers instead.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx := c.Request.Context()
	ip := services.ClientIP(c.Request)

	if res := h.limiter.CheckGenerate(ctx, ip); res.Limited {
		out, err := h.layouts.GenerateFallback(c.Request, req)
		if err != nil {
			respondGenerateError(c, err)
			return
		}
		h.log.Info("generate rate limited, serving default layout", "client_ip", ip, "retry_after", res.RetryAfter)
		response.OK(c, generateResponse{
			GeneratedLayout: out.Layout,
			CacheKey:        out.CacheKey,
			VisitorContext:  out.VisitorContext,
			UIHints:         out.UIHints,
			RateLimited:     true,
			RetryAfter:      res.RetryAfter,
		})
		return
	}
	h.limiter.RecordGenerate(ctx, ip)

	out, err := h.layouts.Generate(ctx, c.Request, req)
	if err != nil {
		respondGenerateError(c, err)
		return
	}

	response.OK(c, generateResponse{
		GeneratedLayout: out.Layout,
		CacheKey:        out.CacheKey,
		VisitorContext:  out.VisitorContext,
		UIHints:         out.UIHints,
		Categorization:  out.Categorization,
	})
}

func respondGenerateError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		response.Error(c, apiErr.Status, apiErr.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, "Internal server error")
}
