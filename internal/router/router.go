package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"vocabox-backend/internal/handlers"
	"vocabox-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	studyHandler *handlers.StudyHandler,
	bookmarkHandler *handlers.BookmarkHandler,
	progressHandler *handlers.ProgressHandler,
	dictionaryHandler *handlers.DictionaryHandler,
	mediaHandler *handlers.MediaHandler,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(allowedOrigin))

	// Dictionary misses hit Gemini; keep a lid on per-IP volume (30 req/min).
	dictLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Study Routes ────
		r.Route("/study", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/due", studyHandler.GetDueItems)
			r.Post("/outcome", studyHandler.SubmitOutcome)
			r.Post("/bookmark", bookmarkHandler.Toggle)
			r.Get("/bookmark", bookmarkHandler.Status)
			r.Get("/progress", progressHandler.GetCounts)
		})

		// ──── Dictionary Routes ────
		r.Route("/dictionary", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(dictLimiter.Middleware)
			r.Post("/lookup", dictionaryHandler.Lookup)
		})

		// ──── Media Routes ────
		r.Route("/vision", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/extract-text", mediaHandler.ExtractText)
		})
		r.Route("/speech", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/check", mediaHandler.CheckPronunciation)
		})
	})

	return r
}
