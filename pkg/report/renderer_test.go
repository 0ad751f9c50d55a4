package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/dsgeops/pilotdeck/pkg/errors"
)

func fixedRenderer(compress bool) *Renderer {
	return &Renderer{
		Layout:   DefaultLayout(),
		Compress: compress,
		Now:      func() time.Time { return testClock },
	}
}

func rendererSpec() ReportSpec {
	return testSpec([]Section{
		{Heading: "Executive Summary", Bullets: []string{
			"Request approval for a 90-day controlled pilot.",
			"Keep fixed costs near zero.",
		}},
		{Heading: "Scope", Bullets: []string{
			"In scope: strap segregation at tipping areas.",
		}},
	})
}

// -----------------------------------------------------------------------------
// Determinism
// -----------------------------------------------------------------------------

func TestRenderDeterministicBytes(t *testing.T) {
	r := fixedRenderer(true)
	spec := rendererSpec()

	first, err := r.Render(spec)
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	second, err := r.Render(spec)
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("expected identical bytes from repeated renders under a fixed clock")
	}
}

func TestRenderConcurrentCallsAgree(t *testing.T) {
	r := fixedRenderer(true)
	spec := rendererSpec()

	want, err := r.Render(spec)
	if err != nil {
		t.Fatalf("reference render failed: %v", err)
	}

	var g errgroup.Group
	results := make([]RenderedDocument, 8)
	for i := range results {
		i := i
		g.Go(func() error {
			doc, err := r.Render(spec)
			if err != nil {
				return err
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent render failed: %v", err)
	}
	for i, doc := range results {
		if !bytes.Equal(doc, want) {
			t.Errorf("render %d: bytes differ from reference", i)
		}
	}
}

// -----------------------------------------------------------------------------
// Document framing
// -----------------------------------------------------------------------------

func TestRenderPDFFraming(t *testing.T) {
	doc, err := fixedRenderer(true).Render(rendererSpec())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF-1.4\n")) {
		t.Errorf("expected %%PDF-1.4 header, got %q", doc[:16])
	}
	if !bytes.HasSuffix(doc, []byte("%%EOF\n")) {
		t.Errorf("expected %%%%EOF trailer, got %q", doc[len(doc)-16:])
	}
}

func TestRenderInvalidSpec(t *testing.T) {
	r := fixedRenderer(true)

	doc, err := r.Render(ReportSpec{Title: "", WatermarkText: "wm"})
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	if doc != nil {
		t.Errorf("expected nil bytes on error, got %d bytes", len(doc))
	}
	if !errors.IsCode(err, errors.ErrRenderInvalidSpec) {
		t.Errorf("expected code %s, got %v", errors.ErrRenderInvalidSpec, err)
	}
}

// -----------------------------------------------------------------------------
// Compression
// -----------------------------------------------------------------------------

func TestRenderCompressionToggle(t *testing.T) {
	spec := rendererSpec()

	plain, err := fixedRenderer(false).Render(spec)
	if err != nil {
		t.Fatalf("uncompressed render failed: %v", err)
	}
	packed, err := fixedRenderer(true).Render(spec)
	if err != nil {
		t.Fatalf("compressed render failed: %v", err)
	}

	if bytes.Contains(plain, []byte("/Filter /FlateDecode")) {
		t.Error("uncompressed document should not declare /FlateDecode")
	}
	if !bytes.Contains(packed, []byte("/Filter /FlateDecode")) {
		t.Error("compressed document should declare /FlateDecode")
	}
	if !bytes.Contains(plain, []byte("Tj\n")) {
		t.Error("uncompressed document should expose text operators")
	}
}

// -----------------------------------------------------------------------------
// Round trip
// -----------------------------------------------------------------------------

func TestRenderDocumentPageCountRoundTrip(t *testing.T) {
	bullets := make([]string, 30)
	for i := range bullets {
		bullets[i] = strings.Repeat("strap diversion pilot content ", 12)
	}
	spec := testSpec([]Section{{Heading: "A", Bullets: bullets}})

	doc, err := fixedRenderer(true).RenderDocument(spec)
	if err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	if doc.Pages < 2 {
		t.Fatalf("expected multiple pages, got %d", doc.Pages)
	}
	if !doc.RenderedAt.Equal(testClock) {
		t.Errorf("expected RenderedAt %v, got %v", testClock, doc.RenderedAt)
	}

	reader, err := pdflib.NewReader(bytes.NewReader(doc.Bytes), int64(len(doc.Bytes)))
	if err != nil {
		t.Fatalf("reopening rendered document failed: %v", err)
	}
	if got := reader.NumPage(); got != doc.Pages {
		t.Errorf("expected %d pages on reread, got %d", doc.Pages, got)
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer()
	if !r.Compress {
		t.Error("expected compression on by default")
	}
	if r.Now == nil {
		t.Error("expected a clock by default")
	}
	if r.Layout.WrapWidth != 110 {
		t.Errorf("expected default wrap width 110, got %d", r.Layout.WrapWidth)
	}

	doc, err := r.RenderDocument(rendererSpec())
	if err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	if doc.RenderedAt.IsZero() {
		t.Error("expected wall clock render time")
	}
}
