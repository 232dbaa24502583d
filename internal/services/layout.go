package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/yungbote/folio-backend/internal/clients/aigateway"
	"github.com/yungbote/folio-backend/internal/clients/kv"
	"github.com/yungbote/folio-backend/internal/platform/apierr"
	"github.com/yungbote/folio-backend/internal/platform/logger"
	"github.com/yungbote/folio-backend/internal/types"
	"github.com/yungbote/folio-backend/internal/utils"
)

// GenerateRequest is the validated body of POST /api/generate.
type GenerateRequest struct {
	VisitorTag       string                  `json:"visitorTag"`
	CustomIntent     string                  `json:"customIntent,omitempty"`
	PortfolioContent *types.PortfolioContent `json:"portfolioContent"`
}

// GenerateResult bundles the layout with the response-only metadata the
// handler exposes as underscore-prefixed fields.
type GenerateResult struct {
	Layout         types.GeneratedLayout
	CacheKey       string
	VisitorContext types.VisitorContext
	UIHints        types.UIHints
	Categorization *types.CategorizationResult
}

// LayoutService is the top-level generation coordinator. Generate only
// returns an error for malformed requests; every upstream failure degrades
// to the deterministic fallback layout.
type LayoutService interface {
	Generate(ctx context.Context, r *http.Request, req GenerateRequest) (*GenerateResult, error)
	// GenerateFallback skips categorization and the AI call entirely; used
	// when the caller is rate limited.
	GenerateFallback(r *http.Request, req GenerateRequest) (*GenerateResult, error)
	// InvalidateCached drops a cached layout so the next generate request
	// rebuilds it. Best effort.
	InvalidateCached(ctx context.Context, cacheKey string)
}

type layoutService struct {
	log      *logger.Logger
	store    kv.Store
	ai       aigateway.Client
	intents  IntentService
	links    LinkValidator
	cacheTTL time.Duration
}

func NewLayoutService(log *logger.Logger, store kv.Store, ai aigateway.Client, intents IntentService, links LinkValidator, cacheTTL time.Duration) LayoutService {
	return &layoutService{
		log:      log.With("service", "LayoutService"),
		store:    store,
		ai:       ai,
		intents:  intents,
		links:    links,
		cacheTTL: cacheTTL,
	}
}

var errMissingFields = errors.New("Missing required fields")

func validateGenerateRequest(req GenerateRequest) error {
	if req.VisitorTag == "" || req.PortfolioContent == nil {
		return apierr.BadRequest("missing_fields", errMissingFields)
	}
	return nil
}

func (s *layoutService) Generate(ctx context.Context, r *http.Request, req GenerateRequest) (*GenerateResult, error) {
	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}

	visitor := ExtractVisitorContext(r)
	hints := DeriveUIHints(visitor)

	tagName := req.VisitorTag
	tagGuidelines := guidelinesFor(tagName)
	var categorization *types.CategorizationResult
	if req.CustomIntent != "" {
		result := s.intents.Categorize(ctx, req.CustomIntent)
		categorization = &result
		tagName = result.TagName
		tagGuidelines = result.Guidelines
	}

	out := &GenerateResult{
		CacheKey:       cacheKeyFor(tagName, req.PortfolioContent),
		VisitorContext: visitor,
		UIHints:        hints,
		Categorization: categorization,
	}

	if s.ai == nil {
		out.Layout = DefaultLayout(req.VisitorTag, req.PortfolioContent)
		return out, nil
	}

	layout, ok := s.generateWithAI(ctx, req, tagName, tagGuidelines, visitor)
	if !ok {
		out.Layout = DefaultLayout(req.VisitorTag, req.PortfolioContent)
		return out, nil
	}

	s.links.Sanitize(ctx, &layout)
	s.cacheLayout(ctx, out.CacheKey, layout)
	out.Layout = layout
	return out, nil
}

func (s *layoutService) GenerateFallback(r *http.Request, req GenerateRequest) (*GenerateResult, error) {
	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}
	visitor := ExtractVisitorContext(r)
	return &GenerateResult{
		Layout:         DefaultLayout(req.VisitorTag, req.PortfolioContent),
		CacheKey:       cacheKeyFor(req.VisitorTag, req.PortfolioContent),
		VisitorContext: visitor,
		UIHints:        DeriveUIHints(visitor),
	}, nil
}

// generateWithAI is the single-shot model call. Any failure — transport,
// empty content, parse error, structurally invalid result — reports !ok and
// the AI output is discarded wholesale. No retries, no partial use.
func (s *layoutService) generateWithAI(ctx context.Context, req GenerateRequest, tagName, guidelines string, visitor types.VisitorContext) (types.GeneratedLayout, bool) {
	system := buildLayoutSystemPrompt(req.PortfolioContent, tagName, guidelines)
	user := buildLayoutUserPrompt(tagName, req.CustomIntent, visitor)

	raw, err := s.ai.GenerateJSON(ctx, system, user, "generated_layout", layoutSchema())
	if err != nil {
		s.log.Warn("layout generation call failed, using default layout", "tag", tagName, "error", err)
		return types.GeneratedLayout{}, false
	}

	var layout types.GeneratedLayout
	if err := json.Unmarshal(raw, &layout); err != nil {
		s.log.Warn("layout generation returned unparseable JSON, using default layout", "error", err)
		return types.GeneratedLayout{}, false
	}
	if !layout.Valid() {
		s.log.Warn("layout generation returned structurally invalid result, using default layout", "tag", tagName)
		return types.GeneratedLayout{}, false
	}
	return layout, true
}

func (s *layoutService) cacheLayout(ctx context.Context, key string, layout types.GeneratedLayout) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(layout)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.log.Warn("layout cache write failed", "key", key, "error", err)
	}
}

func (s *layoutService) InvalidateCached(ctx context.Context, cacheKey string) {
	if s.store == nil || cacheKey == "" {
		return
	}
	if err := s.store.Del(ctx, cacheKey); err != nil {
		s.log.Warn("layout cache invalidation failed", "key", cacheKey, "error", err)
	}
}

func cacheKeyFor(tagName string, content *types.PortfolioContent) string {
	raw, err := json.Marshal(content)
	if err != nil {
		raw = []byte("{}")
	}
	return "layout:" + tagName + ":" + utils.HashString(string(raw))
}

func guidelinesFor(tagName string) string {
	if tag, ok := knownTags[tagName]; ok {
		return tag.Guidelines
	}
	return knownTags[defaultTag].Guidelines
}

// DefaultLayout synthesizes the deterministic fallback layout for a visitor
// tag. Pure function of its inputs; the accent is always blue — AI output is
// the only source of theme variety.
func DefaultLayout(visitorTag string, content *types.PortfolioContent) types.GeneratedLayout {
	if content == nil {
		content = &types.PortfolioContent{}
	}
	info := content.PersonalInfo

	hero := types.Section{
		Type: types.SectionHero,
		Props: map[string]any{
			"name":  info.Name,
			"title": info.Title,
		},
	}
	if info.ProfileImage != "" {
		hero.Props["profileImage"] = info.ProfileImage
	}

	layout := types.GeneratedLayout{
		Layout:   types.LayoutSingleColumn,
		Theme:    types.Theme{Accent: "blue"},
		Sections: []types.Section{hero},
	}

	switch visitorTag {
	case "recruiter":
		layout.Layout = types.LayoutHeroFocused
		if info.ResumeURL != "" {
			hero.Props["cta"] = map[string]any{"label": "View Resume", "href": info.ResumeURL}
			layout.Sections[0] = hero
		}
		layout.Sections = append(layout.Sections,
			types.Section{Type: types.SectionSkillBadges, Props: map[string]any{"style": "detailed"}},
			types.Section{Type: types.SectionTimeline, Props: map[string]any{}},
			types.Section{Type: types.SectionCardGrid, Props: map[string]any{"columns": 2, "items": content.ProjectIDs(4)}},
		)
	case "developer":
		layout.Layout = types.LayoutTwoColumn
		layout.Sections = append(layout.Sections,
			types.Section{Type: types.SectionCardGrid, Props: map[string]any{"columns": 3, "items": content.ProjectIDs(0)}},
			types.Section{Type: types.SectionSkillBadges, Props: map[string]any{"style": "detailed"}},
			types.Section{Type: types.SectionContactForm, Props: map[string]any{"showGitHub": true, "showEmail": true}},
		)
	case "collaborator":
		layout.Layout = types.LayoutHeroFocused
		layout.Sections = append(layout.Sections,
			types.Section{Type: types.SectionTextBlock, Props: map[string]any{"content": info.Bio, "style": "prose"}},
			types.Section{Type: types.SectionCardGrid, Props: map[string]any{"columns": 2, "items": content.ProjectIDs(2)}},
			types.Section{Type: types.SectionContactForm, Props: map[string]any{"showEmail": true, "showLinkedIn": true, "showGitHub": true}},
		)
	default:
		// friend and every unrecognized tag.
		images := content.Photos
		if images == nil {
			images = []string{}
		}
		layout.Sections = append(layout.Sections,
			types.Section{Type: types.SectionTextBlock, Props: map[string]any{"content": info.Bio}},
			types.Section{Type: types.SectionImageGallery, Props: map[string]any{"images": images}},
			types.Section{Type: types.SectionContactForm, Props: map[string]any{"showEmail": true}},
		)
	}

	return layout
}
