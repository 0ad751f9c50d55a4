package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dsgeops/pilotdeck/pkg/errors"
	"github.com/dsgeops/pilotdeck/pkg/pilot"
	"github.com/dsgeops/pilotdeck/pkg/report"
)

// Manifest records the provenance of one rendered proposal: what was
// rendered, when, from which assumptions, and the digest that lets a
// reviewer verify the bytes they hold.
type Manifest struct {
	RenderedAt  time.Time         `json:"rendered_at"`
	Filename    string            `json:"filename"`
	SHA256      string            `json:"sha256"`
	Pages       int               `json:"pages"`
	ByteSize    int               `json:"byte_size"`
	Assumptions pilot.Assumptions `json:"assumptions"`
}

// NewManifest builds the manifest for a rendered document.
func NewManifest(doc report.Document, a pilot.Assumptions) Manifest {
	return Manifest{
		RenderedAt:  doc.RenderedAt,
		Filename:    Filename,
		SHA256:      Digest(doc.Bytes),
		Pages:       doc.Pages,
		ByteSize:    len(doc.Bytes),
		Assumptions: a,
	}
}

// Verify reports whether doc matches the manifest's size and digest.
func (m Manifest) Verify(doc []byte) bool {
	return len(doc) == m.ByteSize && Digest(doc) == m.SHA256
}

// WriteJSON writes the manifest as indented JSON.
func (m Manifest) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.ExportWrap(err, errors.ErrExportWriteFailed, "marshal manifest")
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return errors.ExportWrap(err, errors.ErrExportWriteFailed, "write manifest")
	}
	return nil
}
