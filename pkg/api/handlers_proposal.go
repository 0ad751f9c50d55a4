package api

import (
	"net/http"

	"github.com/dsgeops/pilotdeck/pkg/pilot"
	"github.com/dsgeops/pilotdeck/pkg/proposal"
)

// ProposalHandler serves the proposal content derived from the current
// assumptions: narrative sections, work breakdown, timeline, and CTQs.
type ProposalHandler struct {
	store *pilot.Store
}

// NewProposalHandler creates a new ProposalHandler backed by the given store.
func NewProposalHandler(store *pilot.Store) *ProposalHandler {
	return &ProposalHandler{store: store}
}

// RegisterRoutes registers the proposal API routes on the router.
func (h *ProposalHandler) RegisterRoutes(router *Router) {
	router.GET("/api/proposal/sections", h.GetSections)
	router.GET("/api/proposal/wbs", h.GetWBS)
	router.GET("/api/proposal/timeline", h.GetTimeline)
	router.GET("/api/proposal/ctq", h.GetCTQ)
}

// CTQResponse bundles the CTQ table with the pilot's success and exit
// criteria.
type CTQResponse struct {
	Rows            []proposal.CTQ `json:"rows"`
	SuccessCriteria []string       `json:"success_criteria"`
	ExitCriteria    []string       `json:"exit_criteria"`
}

// GetSections handles GET /api/proposal/sections.
// It returns the full renderable spec for the current assumptions.
func (h *ProposalHandler) GetSections(w http.ResponseWriter, r *http.Request) {
	a := h.store.Get()
	WriteJSON(w, http.StatusOK, proposal.BuildSpec(a, pilot.Compute(a)))
}

// GetWBS handles GET /api/proposal/wbs.
func (h *ProposalHandler) GetWBS(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, proposal.WBS())
}

// GetTimeline handles GET /api/proposal/timeline.
// Task dates derive from the stored project start.
func (h *ProposalHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, proposal.Timeline(h.store.Get().ProjectStart))
}

// GetCTQ handles GET /api/proposal/ctq.
func (h *ProposalHandler) GetCTQ(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, CTQResponse{
		Rows:            proposal.CTQTable(h.store.Get()),
		SuccessCriteria: proposal.SuccessCriteria(),
		ExitCriteria:    proposal.ExitCriteria(),
	})
}
