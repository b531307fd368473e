package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lone4alker/easyshift/pkg/core/engine"
	"github.com/lone4alker/easyshift/pkg/core/model"
	"github.com/lone4alker/easyshift/pkg/core/services"
)

// optimizeResponse spreads the run result into the success envelope, so
// clients read {"success":true,"calendar":...,"flat_shifts":...}.
type optimizeResponse struct {
	Success bool `json:"success"`
	*engine.Result
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Schedule optimizer is running",
	})
}

// Schedule optimizes the schedule carried in the request body.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var raw model.RawPayload
	if err := h.readJSON(r, &raw); err != nil {
		h.badRequest(w, "Invalid JSON body")
		return
	}
	if len(raw.Staff) == 0 {
		h.badRequest(w, "staff is required")
		return
	}

	outcome, err := services.OptimizeSchedule(r.Context(), h.engine, h.logger, &raw)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, optimizeResponse{Success: true, Result: outcome.Result})
}

// Update applies a staff-unavailability transaction to the schedule in the
// request body and re-optimizes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var raw model.RawPayload
	if err := h.readJSON(r, &raw); err != nil {
		h.badRequest(w, "Invalid JSON body")
		return
	}
	if len(raw.Staff) == 0 || raw.Update == nil {
		h.badRequest(w, "staff and update are required")
		return
	}

	outcome, err := services.UpdateSchedule(r.Context(), h.engine, h.logger, &raw)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, optimizeResponse{Success: true, Result: outcome.Result})
}

// OptimizeBusiness runs a store-backed optimization for a persisted
// business.
func (h *Handler) OptimizeBusiness(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no database configured"})
		return
	}
	businessID := chi.URLParam(r, "businessID")

	outcome, err := services.OptimizeFromStore(r.Context(), h.database, h.engine, h.logger, businessID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, optimizeResponse{Success: true, Result: outcome.Result})
}

// ListRuns returns a business's recent optimization runs.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no database configured"})
		return
	}
	businessID := chi.URLParam(r, "businessID")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.database.GetRuns(r.Context(), businessID, limit)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"runs":    runs,
	})
}
