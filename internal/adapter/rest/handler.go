package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
	"github.com/simaogato/retireplan-backend/internal/domain"
)

// PlanKeyHeader selects the plan a request reads or writes
const PlanKeyHeader = "X-Plan-Key"

const maxBodyBytes = 1 << 20

// Handler serves the plan endpoints.
type Handler struct {
	plans  PlanStore
	logger *slog.Logger
}

// planResponse is the stored plan together with everything derived from it
type planResponse struct {
	wire.Plan
	wire.Analysis
}

// handleLoad returns the stored plan with defaults for empty slots.
func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	key, ok := h.planKey(w, r)
	if !ok {
		return
	}

	snapshot, err := h.plans.Load(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}

	writeJSON(w, http.StatusOK, wire.FromSnapshot(snapshot))
}

// handleSave writes the slots present in the body and leaves the others untouched.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	key, ok := h.planKey(w, r)
	if !ok {
		return
	}

	var body wire.Plan
	if !h.decode(w, r, &body) {
		return
	}

	if err := h.plans.Save(r.Context(), key, body.SaveRequest()); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handlePlan returns the stored plan together with its calculations.
func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	key, ok := h.planKey(w, r)
	if !ok {
		return
	}

	snapshot, err := h.plans.Load(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		Plan:     wire.FromSnapshot(snapshot),
		Analysis: wire.Analyze(snapshot),
	})
}

// handleCalculate runs the engine over the posted plan without touching storage.
func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var body wire.Plan
	if !h.decode(w, r, &body) {
		return
	}

	writeJSON(w, http.StatusOK, wire.Analyze(body.Snapshot()))
}

func (h *Handler) planKey(w http.ResponseWriter, r *http.Request) (domain.PlanKey, bool) {
	key, err := domain.ParsePlanKey(r.Header.Get(PlanKeyHeader))
	if err != nil {
		h.logger.WarnContext(r.Context(), "rejected plan key", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return key, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError keeps the {"error": "..."} envelope consistent across handlers
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
