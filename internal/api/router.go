package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neexbeast/city-infos/internal/metrics"
)

// NewRouter builds and returns the Chi router with all routes configured.
// Unknown routes and methods answer with the same JSON error shape as the
// handlers.
func NewRouter(handlers *Handlers, up upstreamPinger, m *metrics.Metrics, gatherer prometheus.Gatherer, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(Instrument(m))
	r.Use(RecoverJSON(log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.Get("/health", HealthHandlerFunc(up, log))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/cities/{cityId}", func(r chi.Router) {
		r.Get("/infos", handlers.GetCityInfo)
		r.Post("/recipes", handlers.CreateRecipe)
		r.Delete("/recipes/{recipeId}", handlers.DeleteRecipe)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
