package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"remix-backend/internal/handlers"
	"remix-backend/internal/middleware"
)

type Handlers struct {
	Content    *handlers.ContentHandler
	Screenshot *handlers.ScreenshotHandler
	YouTube    *handlers.YouTubeHandler
	Article    *handlers.ArticleHandler
	Extract    *handlers.ExtractHandler
	// Results is nil when no Redis is configured.
	Results *handlers.ResultHandler
}

// New builds the HTTP router. llmLimiter may be nil to disable rate
// limiting of the generation routes.
func New(log zerolog.Logger, h Handlers, llmLimiter *middleware.RateLimiter, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID(log))
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	api := apiRoutes(h, llmLimiter)
	r.Mount("/api", api)
	r.Mount("/", api)

	return r
}

func apiRoutes(h Handlers, llmLimiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// ──── Generation (LLM) ────
	r.Group(func(r chi.Router) {
		if llmLimiter != nil {
			r.Use(llmLimiter.Middleware)
		}
		r.Post("/processContent", h.Content.ProcessContent)
		r.Post("/processScreenshot", h.Screenshot.ProcessScreenshot)
	})

	// ──── Sources ────
	r.Get("/getComments", h.YouTube.GetComments)
	r.Get("/getTranscript", h.YouTube.GetTranscript)
	r.Get("/getArticle", h.Article.GetArticle)
	r.Post("/extractText", h.Extract.ExtractText)

	// ──── Result handoff ────
	if h.Results != nil {
		r.Post("/results", h.Results.Save)
		r.Get("/results/{id}", h.Results.Get)
	}

	return r
}
