package api

import (
	"net/http"
	"time"

	"github.com/dsgeops/pilotdeck/pkg/pilot"
)

// PilotHandler serves the assumption store and the metrics derived
// from it.
type PilotHandler struct {
	store *pilot.Store
}

// NewPilotHandler creates a new PilotHandler backed by the given store.
func NewPilotHandler(store *pilot.Store) *PilotHandler {
	return &PilotHandler{store: store}
}

// RegisterRoutes registers the pilot API routes on the router.
func (h *PilotHandler) RegisterRoutes(router *Router) {
	router.GET("/api/health", h.GetHealth)
	router.GET("/api/assumptions", h.GetAssumptions)
	router.PUT("/api/assumptions", h.PutAssumptions)
	router.GET("/api/metrics", h.GetMetrics)
}

// HealthResponse is the JSON response for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// AssumptionsResponse pairs the assumption set with the metrics it
// yields, so a PUT caller sees the effect of the change immediately.
type AssumptionsResponse struct {
	Assumptions pilot.Assumptions `json:"assumptions"`
	Metrics     pilot.Metrics     `json:"metrics"`
}

// GetHealth handles GET /api/health.
func (h *PilotHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetAssumptions handles GET /api/assumptions.
func (h *PilotHandler) GetAssumptions(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Get())
}

// PutAssumptions handles PUT /api/assumptions.
// The body is applied over the current assumption set, so callers may
// send only the fields they want to change. Updating the store fans
// the change out to WebSocket subscribers.
func (h *PilotHandler) PutAssumptions(w http.ResponseWriter, r *http.Request) {
	updated := h.store.Get()
	if err := ReadJSON(r, &updated); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json",
			"Failed to parse request body: "+err.Error())
		return
	}

	if err := h.store.Update(updated); err != nil {
		WriteDeckError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, AssumptionsResponse{
		Assumptions: updated,
		Metrics:     pilot.Compute(updated),
	})
}

// GetMetrics handles GET /api/metrics.
func (h *PilotHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, pilot.Compute(h.store.Get()))
}
