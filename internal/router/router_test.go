package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remix-backend/internal/config"
	"remix-backend/internal/handlers"
	"remix-backend/internal/middleware"
	"remix-backend/internal/services"
)

func newTestRouter() http.Handler {
	return newTestRouterWithLimiter(nil)
}

func newTestRouterWithLimiter(limiter *middleware.RateLimiter) http.Handler {
	log := zerolog.Nop()
	h := Handlers{
		Content:    handlers.NewContentHandler(services.NewContentService(nil, "OPENAI_API_KEY", log), 1<<20),
		Screenshot: handlers.NewScreenshotHandler(services.NewScreenshotService(nil, "OPENAI_API_KEY", log), 1<<20),
		YouTube:    handlers.NewYouTubeHandler(services.NewVideoResolver(nil), nil, services.NewYouTubeService(log)),
		Article:    handlers.NewArticleHandler(services.NewArticleService(log)),
		Extract:    handlers.NewExtractHandler(services.NewFileExtractService(), 1<<20),
	}
	return New(log, h, limiter, "*")
}

func TestRouter_Health(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_MethodNotAllowedIsJSON(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/processContent", "/api/processContent"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, path)
		assert.JSONEq(t, `{"error":"Method not allowed","request_id":"`+rr.Header().Get("X-Request-ID")+`"}`, rr.Body.String())
	}
}

func TestRouter_MirrorsRoutesUnderAPI(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/getComments?videoId=abc", "/api/getComments?videoId=abc"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

		// no YouTube key configured
		assert.Equal(t, http.StatusInternalServerError, rr.Code, path)
	}
}

func TestRouter_ResultsOnlyWithStore(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/results/abc", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_DefaultConfigNeverRateLimits(t *testing.T) {
	t.Setenv("LLM_RATE_LIMIT", "")
	os.Unsetenv("LLM_RATE_LIMIT")
	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := middleware.NewLLMRateLimiter(ctx, cfg.LLMRateLimit)
	require.Nil(t, limiter)

	r := newTestRouterWithLimiter(limiter)
	codes := map[int]int{}
	for i := 0; i < 60; i++ {
		req := httptest.NewRequest(http.MethodPost, "/processContent", strings.NewReader(`{}`))
		req.RemoteAddr = "203.0.113.7:4000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		codes[rr.Code]++
	}

	assert.Zero(t, codes[http.StatusTooManyRequests])
}

func TestRouter_RateLimitIsOptIn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := newTestRouterWithLimiter(middleware.NewLLMRateLimiter(ctx, 2))
	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/processContent", strings.NewReader(`{}`))
		req.RemoteAddr = "203.0.113.7:4000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		last = rr.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
