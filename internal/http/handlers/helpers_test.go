package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/folio-backend/internal/platform/logger"
	"github.com/yungbote/folio-backend/internal/services"
	"github.com/yungbote/folio-backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeLayouts struct {
	result *services.GenerateResult
	err    error

	generateCalls int
	fallbackCalls int
	invalidated   []string
}

func (f *fakeLayouts) Generate(_ context.Context, _ *http.Request, _ services.GenerateRequest) (*services.GenerateResult, error) {
	f.generateCalls++
	return f.result, f.err
}

func (f *fakeLayouts) GenerateFallback(_ *http.Request, _ services.GenerateRequest) (*services.GenerateResult, error) {
	f.fallbackCalls++
	return f.result, f.err
}

func (f *fakeLayouts) InvalidateCached(_ context.Context, cacheKey string) {
	f.invalidated = append(f.invalidated, cacheKey)
}

type fakeLimiter struct {
	generateResult services.RateLimitResult
	feedbackResult services.RateLimitResult

	recordedGenerate []string
	recordedFeedback []string
}

func (f *fakeLimiter) CheckFeedback(_ context.Context, _ string) services.RateLimitResult {
	return f.feedbackResult
}

func (f *fakeLimiter) RecordFeedback(_ context.Context, sessionID string) {
	f.recordedFeedback = append(f.recordedFeedback, sessionID)
}

func (f *fakeLimiter) CheckGenerate(_ context.Context, _ string) services.RateLimitResult {
	return f.generateResult
}

func (f *fakeLimiter) RecordGenerate(_ context.Context, ip string) {
	f.recordedGenerate = append(f.recordedGenerate, ip)
}

type fakeFeedback struct {
	result services.FeedbackResult
	last   *services.FeedbackRequest
}

func (f *fakeFeedback) Submit(_ context.Context, req services.FeedbackRequest) services.FeedbackResult {
	f.last = &req
	return f.result
}

func sampleResult() *services.GenerateResult {
	return &services.GenerateResult{
		Layout: types.GeneratedLayout{
			Layout: types.LayoutSingleColumn,
			Theme:  types.Theme{Accent: "blue"},
			Sections: []types.Section{
				{Type: types.SectionHero, Props: map[string]any{"name": "Ada"}},
			},
		},
		CacheKey: "layout:friend:abc",
		UIHints:  types.UIHints{SuggestedTheme: types.ThemeSystem},
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

var (
	errMissingForTest    = errors.New("Missing required fields")
	errUnexpectedForTest = errors.New("kaboom")
)
