// Package report lays out pilot-proposal content into paginated,
// watermarked PDF documents.
//
// Rendering happens in two phases. Paginate walks a ReportSpec and
// produces per-page drawing command sequences (page breaks, wrapping,
// watermark and footer stamping are decided here). The serializer then
// flushes those commands to PDF bytes. Layout decisions can be tested
// by asserting on command sequences without touching the PDF backend.
package report

import (
	"strings"
	"time"

	"github.com/dsgeops/pilotdeck/pkg/errors"
)

// ReportSpec is the immutable input to a single render call.
type ReportSpec struct {
	Title         string    `json:"title" yaml:"title"`
	WatermarkText string    `json:"watermark_text" yaml:"watermark_text"`
	Sections      []Section `json:"sections" yaml:"sections"`
}

// Section is a heading plus an ordered list of bullet strings.
// Sections render top-to-bottom in slice order.
type Section struct {
	Heading string   `json:"heading" yaml:"heading"`
	Bullets []string `json:"bullets" yaml:"bullets"`
}

// Cursor tracks render-time position: the vertical baseline on the
// current page and the zero-based page index. A cursor is owned by a
// single render pass and discarded afterward.
type Cursor struct {
	Y         float64
	PageIndex int
}

// RenderedDocument holds finished PDF bytes.
type RenderedDocument []byte

// Document is a rendered report plus the provenance detail callers
// record alongside it.
type Document struct {
	Bytes      RenderedDocument
	Pages      int
	RenderedAt time.Time
}

// Validate checks the spec's local contract: title and watermark text
// must be non-empty. Sections may be empty (a minimal one-page
// document results).
func (s ReportSpec) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.InvalidSpec("title must not be empty")
	}
	if strings.TrimSpace(s.WatermarkText) == "" {
		return errors.InvalidSpec("watermark text must not be empty")
	}
	return nil
}
