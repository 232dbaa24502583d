package services

import (
	"context"
	"fmt"

	"github.com/yungbote/folio-backend/internal/clients/kv"
	"github.com/yungbote/folio-backend/internal/platform/logger"
)

// Feedback types accepted from the frontend.
const (
	FeedbackLike    = "like"
	FeedbackDislike = "dislike"
)

type FeedbackRequest struct {
	FeedbackType string `json:"feedbackType"`
	AudienceType string `json:"audienceType"`
	CacheKey     string `json:"cacheKey"`
	SessionID    string `json:"sessionId"`
}

type FeedbackResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Regenerate  bool   `json:"regenerate,omitempty"`
	RateLimited bool   `json:"rateLimited,omitempty"`
	RetryAfter  int    `json:"retryAfter,omitempty"`
}

// FeedbackService records visitor feedback. Likes always succeed. Dislikes
// are session rate limited; an admitted dislike invalidates the cached
// layout and tells the caller to re-request /api/generate.
type FeedbackService interface {
	Submit(ctx context.Context, req FeedbackRequest) FeedbackResult
}

type feedbackService struct {
	log     *logger.Logger
	store   kv.Store
	limiter RateLimitService
	layouts LayoutService
}

func NewFeedbackService(log *logger.Logger, store kv.Store, limiter RateLimitService, layouts LayoutService) FeedbackService {
	return &feedbackService{
		log:     log.With("service", "FeedbackService"),
		store:   store,
		limiter: limiter,
		layouts: layouts,
	}
}

func (s *feedbackService) Submit(ctx context.Context, req FeedbackRequest) FeedbackResult {
	switch req.FeedbackType {
	case FeedbackLike:
		s.tally(ctx, req.AudienceType, FeedbackLike)
		return FeedbackResult{Success: true, Message: "Feedback recorded"}
	case FeedbackDislike:
		if res := s.limiter.CheckFeedback(ctx, req.SessionID); res.Limited {
			return FeedbackResult{
				Success:     false,
				Message:     "Please wait before requesting a new layout",
				RateLimited: true,
				RetryAfter:  res.RetryAfter,
			}
		}
		s.limiter.RecordFeedback(ctx, req.SessionID)
		s.layouts.InvalidateCached(ctx, req.CacheKey)
		s.tally(ctx, req.AudienceType, FeedbackDislike)
		return FeedbackResult{Success: true, Message: "Regenerating layout", Regenerate: true}
	default:
		// Callers validate feedbackType before submitting; treat anything
		// else as a no-op failure.
		return FeedbackResult{Success: false, Message: "Invalid feedback type"}
	}
}

// tally keeps best-effort per-audience counters. Skipped silently when the
// store is absent.
func (s *feedbackService) tally(ctx context.Context, audienceType, feedbackType string) {
	if s.store == nil {
		return
	}
	key := fmt.Sprintf("feedback:%s:%s", audienceType, feedbackType)
	if _, err := s.store.Incr(ctx, key); err != nil {
		s.log.Warn("feedback tally failed", "key", key, "error", err)
	}
}
