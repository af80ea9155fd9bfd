package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/ppc-optimizer/internal/pkg/httputil"
)

// SetupRoutes configures all API routes. Health probes sit outside /api so
// load balancers can reach them without going through CORS.
func SetupRoutes(h *Handlers, hc *HealthChecker, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health checks
	r.Get("/health", hc.HandleHealth)
	r.Get("/health/live", hc.HandleLiveness)
	r.Get("/health/ready", hc.HandleReadiness)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			httputil.OK(w, map[string]string{"status": "ok"})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Post("/search-terms", h.UploadSearchTerms)
			r.Post("/bulk/{sessionID}", h.UploadBulk)
		})

		r.Route("/analysis", func(r chi.Router) {
			r.Get("/kpis/{sessionID}", h.GetKPIs)
			r.Get("/campaigns/{sessionID}", h.GetCampaignMetrics)
			r.Get("/monthly/{sessionID}", h.GetMonthly)
			r.Get("/filters/{sessionID}", h.GetFilters)
			r.Get("/search-terms/{sessionID}/data", h.GetSearchTermsData)
			r.Post("/search-terms/{sessionID}", h.AnalyzeSearchTerms)
			r.Get("/decision-center/{sessionID}", h.GetDecisionCenter)
		})

		r.Route("/export", func(r chi.Router) {
			r.Post("/negatives", h.ExportNegatives)
			r.Post("/negatives/preview", h.PreviewNegatives)
			r.Post("/auto-campaign", h.ExportAutoCampaign)
			r.Post("/bid-optimization", h.ExportBidChanges)
			r.Post("/budget-optimization", h.ExportBudgetChanges)
		})

		r.Delete("/sessions/{sessionID}", h.DeleteSession)
	})

	return r
}
