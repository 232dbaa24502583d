package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/folio-backend/internal/platform/apierr"
	"github.com/yungbote/folio-backend/internal/services"
)

func newGenerateRouter(t *testing.T, layouts *fakeLayouts, limiter *fakeLimiter) *gin.Engine {
	t.Helper()
	router := gin.New()
	h := NewGenerateHandler(newTestLogger(t), layouts, limiter)
	router.POST("/api/generate", h.Generate)
	return router
}

func validGenerateBody() map[string]any {
	return map[string]any{
		"visitorTag": "friend",
		"portfolioContent": map[string]any{
			"personalInfo": map[string]any{"name": "Ada", "title": "Engineer"},
		},
	}
}

func TestGenerateHappyPath(t *testing.T) {
	layouts := &fakeLayouts{result: sampleResult()}
	limiter := &fakeLimiter{}
	router := newGenerateRouter(t, layouts, limiter)

	w := postJSON(t, router, "/api/generate", validGenerateBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["layout"] != "single-column" {
		t.Fatalf("layout = %v", body["layout"])
	}
	if body["_cacheKey"] != "layout:friend:abc" {
		t.Fatalf("_cacheKey = %v", body["_cacheKey"])
	}
	if _, present := body["_rateLimited"]; present {
		t.Fatalf("_rateLimited present on unthrottled response")
	}

	if layouts.generateCalls != 1 || layouts.fallbackCalls != 0 {
		t.Fatalf("generate=%d fallback=%d", layouts.generateCalls, layouts.fallbackCalls)
	}
	if len(limiter.recordedGenerate) != 1 {
		t.Fatalf("recorded generates = %v", limiter.recordedGenerate)
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	layouts := &fakeLayouts{result: sampleResult()}
	router := newGenerateRouter(t, layouts, &fakeLimiter{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Missing required fields" {
		t.Fatalf("body = %v", body)
	}
	if layouts.generateCalls != 0 {
		t.Fatalf("layout service reached with malformed body")
	}
}

func TestGenerateValidationError(t *testing.T) {
	layouts := &fakeLayouts{err: apierr.BadRequest("missing_fields", errMissingForTest)}
	router := newGenerateRouter(t, layouts, &fakeLimiter{})

	w := postJSON(t, router, "/api/generate", map[string]any{"customIntent": "hi"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGenerateRateLimitedServesDefault(t *testing.T) {
	layouts := &fakeLayouts{result: sampleResult()}
	limiter := &fakeLimiter{generateResult: services.RateLimitResult{Limited: true, RetryAfter: 42}}
	router := newGenerateRouter(t, layouts, limiter)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(mustMarshal(t, validGenerateBody())))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("CF-Connecting-IP", "203.0.113.9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Throttled visitors still get a layout, never an error status.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["_rateLimited"] != true {
		t.Fatalf("_rateLimited = %v", body["_rateLimited"])
	}
	if body["_retryAfter"] != float64(42) {
		t.Fatalf("_retryAfter = %v", body["_retryAfter"])
	}

	if layouts.fallbackCalls != 1 || layouts.generateCalls != 0 {
		t.Fatalf("generate=%d fallback=%d", layouts.generateCalls, layouts.fallbackCalls)
	}
	// A throttled request must not consume more quota.
	if len(limiter.recordedGenerate) != 0 {
		t.Fatalf("recorded generates = %v", limiter.recordedGenerate)
	}
}

func TestGenerateInternalError(t *testing.T) {
	layouts := &fakeLayouts{err: errUnexpectedForTest}
	router := newGenerateRouter(t, layouts, &fakeLimiter{})

	w := postJSON(t, router, "/api/generate", validGenerateBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Internal server error" {
		t.Fatalf("body = %v", body)
	}
}
