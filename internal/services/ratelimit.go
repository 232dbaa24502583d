package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/yungbote/folio-backend/internal/clients/kv"
	"github.com/yungbote/folio-backend/internal/platform/logger"
)

// RateLimitResult is the outcome of a limiter check. RetryAfter is in whole
// seconds, rounded up, and only meaningful when Limited is true.
type RateLimitResult struct {
	Limited    bool
	RetryAfter int
}

// RateLimitService runs two independent limiters over one key-value store:
// a per-session feedback limiter (one dislike per window) and a per-IP
// generation limiter (at most maxGenerate requests per window).
//
// Check and Record are deliberately separate round-trips with no locking;
// two concurrent requests can both pass a check before either records.
// That over-admission is accepted. Both limiters fail open when the store
// is absent or unreachable.
type RateLimitService interface {
	CheckFeedback(ctx context.Context, sessionID string) RateLimitResult
	RecordFeedback(ctx context.Context, sessionID string)
	CheckGenerate(ctx context.Context, ip string) RateLimitResult
	RecordGenerate(ctx context.Context, ip string)
}

type rateLimitService struct {
	log            *logger.Logger
	store          kv.Store
	feedbackWindow time.Duration
	generateWindow time.Duration
	maxGenerate    int
}

func NewRateLimitService(log *logger.Logger, store kv.Store, feedbackWindow, generateWindow time.Duration, maxGenerate int) RateLimitService {
	if feedbackWindow <= 0 {
		feedbackWindow = 60 * time.Second
	}
	if generateWindow <= 0 {
		generateWindow = 60 * time.Second
	}
	if maxGenerate <= 0 {
		maxGenerate = 3
	}
	return &rateLimitService{
		log:            log.With("service", "RateLimitService"),
		store:          store,
		feedbackWindow: feedbackWindow,
		generateWindow: generateWindow,
		maxGenerate:    maxGenerate,
	}
}

type feedbackEntry struct {
	LastDislike int64 `json:"lastDislike"` // unix millis
	Count       int   `json:"count"`
}

type generateEntry struct {
	WindowStart int64 `json:"windowStart"` // unix millis
	Count       int   `json:"count"`
}

func feedbackKey(sessionID string) string { return "ratelimit:" + sessionID }
func generateKey(ip string) string        { return "genlimit:" + ip }

func (s *rateLimitService) CheckFeedback(ctx context.Context, sessionID string) RateLimitResult {
	var entry feedbackEntry
	if !s.load(ctx, feedbackKey(sessionID), &entry) {
		return RateLimitResult{}
	}
	elapsed := time.Since(time.UnixMilli(entry.LastDislike))
	if elapsed < s.feedbackWindow {
		return RateLimitResult{Limited: true, RetryAfter: ceilSeconds(s.feedbackWindow - elapsed)}
	}
	return RateLimitResult{}
}

// RecordFeedback unconditionally rewrites the entry, restarting the window.
func (s *rateLimitService) RecordFeedback(ctx context.Context, sessionID string) {
	entry := feedbackEntry{LastDislike: time.Now().UnixMilli(), Count: 1}
	s.save(ctx, feedbackKey(sessionID), entry, 2*s.feedbackWindow)
}

func (s *rateLimitService) CheckGenerate(ctx context.Context, ip string) RateLimitResult {
	var entry generateEntry
	if !s.load(ctx, generateKey(ip), &entry) {
		return RateLimitResult{}
	}
	elapsed := time.Since(time.UnixMilli(entry.WindowStart))
	if elapsed >= s.generateWindow {
		return RateLimitResult{}
	}
	if entry.Count >= s.maxGenerate {
		return RateLimitResult{Limited: true, RetryAfter: ceilSeconds(s.generateWindow - elapsed)}
	}
	return RateLimitResult{}
}

// RecordGenerate increments the counter within a live window, or starts a
// fresh window when the previous one has expired or no entry exists.
func (s *rateLimitService) RecordGenerate(ctx context.Context, ip string) {
	key := generateKey(ip)
	var entry generateEntry
	now := time.Now().UnixMilli()
	if s.load(ctx, key, &entry) && time.Since(time.UnixMilli(entry.WindowStart)) < s.generateWindow {
		entry.Count++
	} else {
		entry = generateEntry{WindowStart: now, Count: 1}
	}
	s.save(ctx, key, entry, 2*s.generateWindow)
}

// load reads and decodes an entry. Any store error or a miss yields false,
// which callers treat as "not limited".
func (s *rateLimitService) load(ctx context.Context, key string, out any) bool {
	if s.store == nil {
		return false
	}
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("rate limit read failed, failing open", "key", key, "error", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn("rate limit entry corrupt, failing open", "key", key, "error", err)
		return false
	}
	return true
}

func (s *rateLimitService) save(ctx context.Context, key string, entry any, ttl time.Duration) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, raw, ttl); err != nil {
		s.log.Warn("rate limit write failed", "key", key, "error", err)
	}
}

func ceilSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
