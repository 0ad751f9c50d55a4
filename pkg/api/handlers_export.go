package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dsgeops/pilotdeck/pkg/export"
	"github.com/dsgeops/pilotdeck/pkg/history"
	"github.com/dsgeops/pilotdeck/pkg/pilot"
	"github.com/dsgeops/pilotdeck/pkg/proposal"
	"github.com/dsgeops/pilotdeck/pkg/report"
)

// ExportHandler renders and serves the watermarked proposal PDF and
// the timeline CSV, and exposes the render history.
type ExportHandler struct {
	store    *pilot.Store
	renderer *report.Renderer
	log      *history.Log
	events   EventBroadcaster
}

// NewExportHandler creates a new ExportHandler. A nil renderer or log
// gets a default instance; a nil broadcaster disables render events.
func NewExportHandler(store *pilot.Store, renderer *report.Renderer, log *history.Log, events EventBroadcaster) *ExportHandler {
	if renderer == nil {
		renderer = report.NewRenderer()
	}
	if log == nil {
		log = history.NewLog(history.DefaultTTL)
	}
	return &ExportHandler{
		store:    store,
		renderer: renderer,
		log:      log,
		events:   events,
	}
}

// History returns the render log backing this handler.
func (h *ExportHandler) History() *history.Log {
	return h.log
}

// RegisterRoutes registers the export API routes on the router.
func (h *ExportHandler) RegisterRoutes(router *Router) {
	router.GET("/api/export/pdf", h.GetPDF)
	router.POST("/api/export/pdf", h.PostPDF)
	router.GET("/api/export/timeline.csv", h.GetTimelineCSV)
	router.GET("/api/renders", h.GetRenders)
	router.GET("/api/renders/:id", h.GetRender)
}

// RenderRequest is the JSON body for POST /api/export/pdf. All fields
// are optional overrides of the stored state.
type RenderRequest struct {
	Title         string          `json:"title,omitempty"`
	WatermarkText string          `json:"watermark_text,omitempty"`
	Assumptions   json.RawMessage `json:"assumptions,omitempty"`
}

// GetPDF handles GET /api/export/pdf.
// It renders the proposal for the current assumptions and responds
// with the PDF bytes as a download.
func (h *ExportHandler) GetPDF(w http.ResponseWriter, r *http.Request) {
	a := h.store.Get()
	h.renderPDF(w, proposal.BuildSpec(a, pilot.Compute(a)))
}

// PostPDF handles POST /api/export/pdf.
// The body may override the title, watermark text, or any subset of
// assumption fields for this render only; the stored state is
// untouched.
func (h *ExportHandler) PostPDF(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := ReadJSON(r, &req); err != nil && err != io.EOF {
		WriteError(w, http.StatusBadRequest, "invalid_json",
			"Failed to parse request body: "+err.Error())
		return
	}

	a := h.store.Get()
	if len(req.Assumptions) > 0 {
		if err := json.Unmarshal(req.Assumptions, &a); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_json",
				"Failed to parse assumptions: "+err.Error())
			return
		}
		if err := a.Validate(); err != nil {
			WriteDeckError(w, err)
			return
		}
	}

	spec := proposal.BuildSpec(a, pilot.Compute(a))
	if req.Title != "" {
		spec.Title = req.Title
	}
	if req.WatermarkText != "" {
		spec.WatermarkText = req.WatermarkText
	}

	h.renderPDF(w, spec)
}

// renderPDF renders spec, records the result, notifies subscribers,
// and writes the download response.
func (h *ExportHandler) renderPDF(w http.ResponseWriter, spec report.ReportSpec) {
	doc, err := h.renderer.RenderDocument(spec)
	if err != nil {
		WriteDeckError(w, err)
		return
	}

	rec := h.log.Add(history.NewRecord(doc, spec.Title, history.SourceAPI))
	if h.events != nil {
		h.events.BroadcastRenderCompleted(rec)
	}

	WriteAttachment(w, export.MimeType, export.Filename, doc.Bytes)
}

// GetTimelineCSV handles GET /api/export/timeline.csv.
func (h *ExportHandler) GetTimelineCSV(w http.ResponseWriter, r *http.Request) {
	tasks := proposal.Timeline(h.store.Get().ProjectStart)

	var buf bytes.Buffer
	if err := export.ExportTimelineToCSV(&buf, tasks, nil); err != nil {
		WriteDeckError(w, err)
		return
	}

	WriteAttachment(w, export.TimelineMimeType, export.TimelineFilename, buf.Bytes())
}

// GetRenders handles GET /api/renders.
// The limit query parameter caps the result (default 20).
func (h *ExportHandler) GetRenders(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.log.Recent(QueryInt(r, "limit", 20)))
}

// GetRender handles GET /api/renders/:id.
func (h *ExportHandler) GetRender(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "id")
	rec, ok := h.log.Get(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "not_found", "no render with id "+id)
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}
