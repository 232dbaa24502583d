package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/folio-backend/internal/http/response"
	"github.com/yungbote/folio-backend/internal/platform/logger"
	"github.com/yungbote/folio-backend/internal/services"
)

type FeedbackHandler struct {
	log      *logger.Logger
	feedback services.FeedbackService
}

func NewFeedbackHandler(log *logger.Logger, feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		log:      log.With("handler", "FeedbackHandler"),
		feedback: feedback,
	}
}

// POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req services.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.FeedbackType == "" || req.AudienceType == "" || req.CacheKey == "" || req.SessionID == "" {
		response.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.FeedbackType != services.FeedbackLike && req.FeedbackType != services.FeedbackDislike {
		response.Error(c, http.StatusBadRequest, "Invalid feedback type")
		return
	}

	result := h.feedback.Submit(c.Request.Context(), req)
	h.log.Debug("feedback submitted",
		"feedback_type", req.FeedbackType,
		"audience_type", req.AudienceType,
		"session_id", req.SessionID,
		"regenerate", result.Regenerate,
	)
	response.OK(c, result)
}
