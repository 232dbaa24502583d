package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/yungbote/folio-backend/internal/clients/aigateway"
	"github.com/yungbote/folio-backend/internal/clients/kv"
	"github.com/yungbote/folio-backend/internal/platform/logger"
	"github.com/yungbote/folio-backend/internal/types"
	"github.com/yungbote/folio-backend/internal/utils"
)

// IntentService maps a free-text visitor intent to an audience tag. It is
// total: any upstream or infrastructure failure degrades to the default
// friend result, never an error.
type IntentService interface {
	Categorize(ctx context.Context, customIntent string) types.CategorizationResult
}

type intentService struct {
	log   *logger.Logger
	store kv.Store
	ai    aigateway.Client
}

func NewIntentService(log *logger.Logger, store kv.Store, ai aigateway.Client) IntentService {
	return &intentService{
		log:   log.With("service", "IntentService"),
		store: store,
		ai:    ai,
	}
}

func defaultCategorization() types.CategorizationResult {
	friend := knownTags[defaultTag]
	return types.CategorizationResult{
		Status:      types.CategorizationMatched,
		TagName:     defaultTag,
		DisplayName: friend.DisplayName,
		Guidelines:  friend.Guidelines,
		Confidence:  1,
		Reason:      "Default fallback",
	}
}

func (s *intentService) Categorize(ctx context.Context, customIntent string) types.CategorizationResult {
	normalized := normalizeIntent(customIntent)
	cacheKey := "intent:" + utils.HashString(normalized)

	// Cached results are returned verbatim; they were sanitized before the
	// write, re-sanitizing would risk drift.
	if cached := s.cachedResult(ctx, cacheKey); cached != nil {
		return *cached
	}

	if s.ai == nil {
		return defaultCategorization()
	}

	system := buildCategorizationSystemPrompt()
	user := buildCategorizationUserPrompt(sanitizeIntentForPrompt(customIntent))

	raw, err := s.ai.GenerateJSON(ctx, system, user, "categorization_result", categorizationSchema())
	if err != nil {
		s.log.Warn("intent categorization call failed, using default", "error", err)
		return defaultCategorization()
	}

	var result types.CategorizationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		s.log.Warn("intent categorization returned unparseable JSON, using default", "error", err)
		return defaultCategorization()
	}

	result = sanitizeCategorization(result)
	s.cacheResult(ctx, cacheKey, result)
	if result.Status == types.CategorizationNewTag {
		s.persistCustomTag(ctx, result, normalized)
	}
	return result
}

func normalizeIntent(intent string) string {
	intent = strings.ToLower(strings.TrimSpace(intent))
	if len(intent) > 50 {
		intent = intent[:50]
	}
	return intent
}

var nonTagChars = regexp.MustCompile(`[^a-z0-9-]+`)
var repeatedHyphens = regexp.MustCompile(`-{2,}`)

func sanitizeTagName(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	tag = nonTagChars.ReplaceAllString(tag, "-")
	tag = repeatedHyphens.ReplaceAllString(tag, "-")
	tag = strings.Trim(tag, "-")
	if len(tag) > 20 {
		tag = strings.Trim(tag[:20], "-")
	}
	if tag == "" {
		tag = defaultTag
	}
	return tag
}

// sanitizeCategorization enforces the invariants on raw model output:
// rejected always becomes the friend tag with canonical guidelines, matches
// against known tags use canonical guidelines, new tags keep the model's
// guidelines capped at 1000 chars with confidence clamped to [0,1].
func sanitizeCategorization(r types.CategorizationResult) types.CategorizationResult {
	r.TagName = sanitizeTagName(r.TagName)

	if r.Status == types.CategorizationRejected {
		friend := knownTags[defaultTag]
		r.TagName = defaultTag
		r.DisplayName = friend.DisplayName
		r.Guidelines = friend.Guidelines
	} else if r.Status == types.CategorizationMatched && isKnownTag(r.TagName) {
		tag := knownTags[r.TagName]
		r.DisplayName = tag.DisplayName
		r.Guidelines = tag.Guidelines
	}

	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
	if len(r.Guidelines) > 1000 {
		r.Guidelines = r.Guidelines[:1000]
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		r.DisplayName = r.TagName
	}
	return r
}

func (s *intentService) cachedResult(ctx context.Context, key string) *types.CategorizationResult {
	if s.store == nil {
		return nil
	}
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("intent cache read failed", "key", key, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var result types.CategorizationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

// cacheResult writes with no TTL: a normalized intent maps to the same
// sanitized result for the lifetime of the store.
func (s *intentService) cacheResult(ctx context.Context, key string, result types.CategorizationResult) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, raw, 0); err != nil {
		s.log.Warn("intent cache write failed", "key", key, "error", err)
	}
}

// persistCustomTag records a newly minted tag under tag:<name>. First write
// wins; a concurrent or earlier writer's record is left untouched.
func (s *intentService) persistCustomTag(ctx context.Context, result types.CategorizationResult, mappedFrom string) {
	if s.store == nil {
		return
	}
	record := types.CustomTag{
		TagName:     result.TagName,
		DisplayName: result.DisplayName,
		Guidelines:  result.Guidelines,
		IsCustom:    true,
		MappedFrom:  mappedFrom,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return
	}
	if _, err := s.store.SetNX(ctx, "tag:"+result.TagName, raw, 0); err != nil {
		s.log.Warn("custom tag write failed", "tag", result.TagName, "error", err)
	}
}
