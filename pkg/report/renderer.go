package report

import (
	"time"

	"github.com/dsgeops/pilotdeck/pkg/errors"
)

// Renderer turns ReportSpecs into finished PDF documents. A Renderer
// holds no per-render state: concurrent Render calls are independent,
// each with its own cursor and buffers.
type Renderer struct {
	// Layout controls page geometry; zero value callers should use
	// NewRenderer which installs DefaultLayout.
	Layout Layout

	// Compress enables zlib content streams.
	Compress bool

	// Now supplies the render time for the footer timestamp and the
	// document's creation date. Fixing it makes output byte-identical
	// across calls with the same spec.
	Now func() time.Time
}

// NewRenderer returns a Renderer with the default layout, compression
// on, and the wall clock.
func NewRenderer() *Renderer {
	return &Renderer{
		Layout:   DefaultLayout(),
		Compress: true,
		Now:      time.Now,
	}
}

// Render validates spec, lays it out, and serializes the result. On
// any failure no partial bytes are returned. The call is pure and
// synchronous: no filesystem or network access.
func (r *Renderer) Render(spec ReportSpec) (RenderedDocument, error) {
	doc, err := r.RenderDocument(spec)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// RenderDocument is Render plus the page count and render time that
// provenance records (history, manifests) need.
func (r *Renderer) RenderDocument(spec ReportSpec) (Document, error) {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	pages, err := Paginate(spec, r.Layout, now)
	if err != nil {
		return Document{}, err
	}

	bytes, err := serialize(pages, r.Layout, docInfo{
		Title:    spec.Title,
		Created:  now,
		Compress: r.Compress,
	})
	if err != nil {
		return Document{}, errors.SerializeFailed(err)
	}

	return Document{
		Bytes:      bytes,
		Pages:      len(pages),
		RenderedAt: now,
	}, nil
}
