package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/neexbeast/city-infos/internal/cityinfo"
)

const maxBodyBytes = 64 << 10

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	svc CityInfoService
	log *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(svc CityInfoService, log *slog.Logger) *Handlers {
	return &Handlers{svc: svc, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

type createRecipeRequest struct {
	Content string `json:"content"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates a service error into a status code and a JSON body.
// Causes of 5xx responses are logged, never returned.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cityinfo.ErrInvalidContent), errors.Is(err, cityinfo.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, cityinfo.ErrCityNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "city not found"})
	case errors.Is(err, cityinfo.ErrRecipeNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "recipe not found"})
	default:
		h.log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// GetCityInfo handles GET /cities/{cityId}/infos.
func (h *Handlers) GetCityInfo(w http.ResponseWriter, r *http.Request) {
	cityID := chi.URLParam(r, "cityId")

	view, err := h.svc.GetCityInfo(r.Context(), cityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// CreateRecipe handles POST /cities/{cityId}/recipes.
// An empty body is treated as a request without content.
func (h *Handlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	cityID := chi.URLParam(r, "cityId")

	var req createRecipeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "content" {
			h.writeError(w, r, fmt.Errorf("%w: content must be a string", cityinfo.ErrInvalidContent))
			return
		}
		h.writeError(w, r, fmt.Errorf("%w: body must be a JSON object", cityinfo.ErrInvalidRequest))
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.writeError(w, r, fmt.Errorf("%w: body must contain a single JSON object", cityinfo.ErrInvalidRequest))
		return
	}

	rec, err := h.svc.CreateRecipe(r.Context(), cityID, req.Content)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.Info("recipe created", "city", cityID, "id", rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// DeleteRecipe handles DELETE /cities/{cityId}/recipes/{recipeId}.
func (h *Handlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	cityID := chi.URLParam(r, "cityId")

	recipeID, err := parseRecipeID(chi.URLParam(r, "recipeId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.DeleteRecipe(r.Context(), cityID, recipeID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.Info("recipe deleted", "city", cityID, "id", recipeID)
	w.WriteHeader(http.StatusNoContent)
}

// parseRecipeID accepts only the canonical decimal form of a positive id, so
// "+1", "007" and "-1" are rejected.
func parseRecipeID(s string) (int, error) {
	invalid := fmt.Errorf("%w: recipeId must be a positive integer", cityinfo.ErrInvalidRequest)
	if s == "" || s[0] < '1' || s[0] > '9' {
		return 0, invalid
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, invalid
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid
	}
	return id, nil
}

// HealthHandlerFunc returns an http.HandlerFunc that checks upstream
// reachability. It answers 200 when the City/Weather API responds and 503
// otherwise.
func HealthHandlerFunc(up upstreamPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{"status": "ok", "upstream": "ok"}

		if err := up.Ping(ctx); err != nil {
			log.Error("health check: upstream ping failed", "err", err)
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["upstream"] = "error"
		}

		writeJSON(w, status, body)
	}
}
