package report

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// PDFVersion is the PDF specification version of emitted documents.
const PDFVersion = "1.4"

const producerName = "pilotdeck report engine"

// charWidthFactor approximates Helvetica advance width per encoded
// byte at font size 1, matching how anchored text is positioned.
const charWidthFactor = 0.5

// Fixed object numbers. Pages reference these from their resource
// dictionaries; ExtGState and page objects follow.
const (
	objCatalog  = 1
	objPages    = 2
	objFontReg  = 3
	objFontBold = 4
	objFirstGS  = 5
)

// docInfo carries the /Info dictionary fields for one document.
type docInfo struct {
	Title    string
	Created  time.Time
	Compress bool
}

// serialize flushes paginated command sequences to PDF bytes. Distinct
// command alphas become named /ExtGState entries shared by every page,
// in ascending alpha order so output is deterministic.
func serialize(pages []Page, layout Layout, info docInfo) ([]byte, error) {
	alphas := collectAlphas(pages)
	gsNames := make(map[float64]string, len(alphas))
	for i, a := range alphas {
		gsNames[a] = fmt.Sprintf("GS%d", i+1)
	}

	// Object bodies indexed by object number - 1.
	objCount := objFirstGS - 1 + len(alphas) + 2*len(pages) + 1
	objs := make([]string, objCount)

	objs[objCatalog-1] = "<< /Type /Catalog\n/Pages 2 0 R\n>>"

	firstPageObj := objFirstGS + len(alphas) + 1
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPageObj+2*i)
	}
	objs[objPages-1] = fmt.Sprintf("<< /Type /Pages\n/Kids [%s]\n/Count %d\n>>",
		strings.Join(kids, " "), len(pages))

	objs[objFontReg-1] = "<< /Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica\n/Encoding /WinAnsiEncoding\n>>"
	objs[objFontBold-1] = "<< /Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica-Bold\n/Encoding /WinAnsiEncoding\n>>"

	for i, a := range alphas {
		objs[objFirstGS-1+i] = fmt.Sprintf("<< /Type /ExtGState\n/ca %.3f\n/CA %.3f\n>>", a, a)
	}

	resources := buildResources(alphas, gsNames)
	for i, page := range pages {
		content := contentStream(page, gsNames)
		streamObj, err := buildStream(content, info.Compress)
		if err != nil {
			return nil, err
		}
		streamNum := firstPageObj + 2*i - 1
		objs[streamNum-1] = streamObj
		objs[streamNum] = fmt.Sprintf("<< /Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 %.2f %.2f]\n/Contents %d 0 R\n/Resources %s\n>>",
			layout.PageWidth, layout.PageHeight, streamNum, resources)
	}

	infoNum := objCount
	objs[infoNum-1] = buildInfoDict(info)

	var buf bytes.Buffer
	buf.WriteString("%PDF-" + PDFVersion + "\n")
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	offsets := make([]int, objCount+1)
	for i, body := range objs {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= objCount; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}

	fmt.Fprintf(&buf, "trailer\n<< /Size %d\n/Root 1 0 R\n/Info %d 0 R\n>>\nstartxref\n%d\n%%%%EOF\n",
		objCount+1, infoNum, xrefPos)

	return buf.Bytes(), nil
}

// collectAlphas returns the distinct alpha values commands use, sorted
// ascending.
func collectAlphas(pages []Page) []float64 {
	seen := make(map[float64]bool)
	for _, page := range pages {
		for _, cmd := range page.Commands {
			seen[cmd.Color.A] = true
		}
	}
	alphas := make([]float64, 0, len(seen))
	for a := range seen {
		alphas = append(alphas, a)
	}
	sort.Float64s(alphas)
	return alphas
}

func buildResources(alphas []float64, gsNames map[float64]string) string {
	var sb strings.Builder
	sb.WriteString("<< /Font << /F1 3 0 R /F2 4 0 R >>")
	if len(alphas) > 0 {
		sb.WriteString(" /ExtGState <<")
		for i, a := range alphas {
			fmt.Fprintf(&sb, " /%s %d 0 R", gsNames[a], objFirstGS+i)
		}
		sb.WriteString(" >>")
	}
	sb.WriteString(" >>")
	return sb.String()
}

// contentStream turns one page's commands into PDF text operators.
// Each command is isolated in q/Q so alpha and text state never leak
// between draws.
func contentStream(page Page, gsNames map[float64]string) []byte {
	var sb strings.Builder
	for _, cmd := range page.Commands {
		encoded := encodeWinAnsi(cmd.Text)
		width := float64(len(encoded)) * cmd.Size * charWidthFactor

		var anchorOffset float64
		switch cmd.Anchor {
		case AnchorCenter:
			anchorOffset = -width / 2
		case AnchorRight:
			anchorOffset = -width
		}

		sb.WriteString("q\n")
		fmt.Fprintf(&sb, "/%s gs\n", gsNames[cmd.Color.A])
		sb.WriteString("BT\n")
		fmt.Fprintf(&sb, "/%s %.2f Tf\n", fontResource(cmd.Font), cmd.Size)
		fmt.Fprintf(&sb, "%.3f %.3f %.3f rg\n", cmd.Color.R, cmd.Color.G, cmd.Color.B)

		if cmd.Rotation != 0 {
			rad := cmd.Rotation * math.Pi / 180
			cos, sin := math.Cos(rad), math.Sin(rad)
			// Anchor offset shifts along the rotated baseline.
			tx := cmd.X + anchorOffset*cos
			ty := cmd.Y + anchorOffset*sin
			fmt.Fprintf(&sb, "%.4f %.4f %.4f %.4f %.2f %.2f Tm\n", cos, sin, -sin, cos, tx, ty)
		} else {
			fmt.Fprintf(&sb, "%.2f %.2f Td\n", cmd.X+anchorOffset, cmd.Y)
		}

		fmt.Fprintf(&sb, "(%s) Tj\n", escapeText(encoded))
		sb.WriteString("ET\nQ\n")
	}
	return []byte(sb.String())
}

func fontResource(f Font) string {
	if f == FontBold {
		return "F2"
	}
	return "F1"
}

// buildStream wraps content in a stream object, zlib-compressed when
// requested.
func buildStream(content []byte, compress bool) (string, error) {
	if compress {
		var zbuf bytes.Buffer
		zw := zlib.NewWriter(&zbuf)
		if _, err := zw.Write(content); err != nil {
			zw.Close()
			return "", fmt.Errorf("compress content stream: %w", err)
		}
		if err := zw.Close(); err != nil {
			return "", fmt.Errorf("compress content stream: %w", err)
		}
		return fmt.Sprintf("<< /Length %d\n/Filter /FlateDecode\n>>\nstream\n%s\nendstream",
			zbuf.Len(), zbuf.Bytes()), nil
	}
	return fmt.Sprintf("<< /Length %d\n>>\nstream\n%s\nendstream", len(content), content), nil
}

func buildInfoDict(info docInfo) string {
	date := info.Created.UTC().Format("D:20060102150405Z")
	var sb strings.Builder
	sb.WriteString("<<\n")
	if info.Title != "" {
		fmt.Fprintf(&sb, "/Title (%s)\n", escapeText(encodeWinAnsi(info.Title)))
	}
	fmt.Fprintf(&sb, "/Producer (%s)\n", producerName)
	fmt.Fprintf(&sb, "/Creator (pilotdeck)\n")
	fmt.Fprintf(&sb, "/CreationDate (%s)\n", date)
	fmt.Fprintf(&sb, "/ModDate (%s)\n", date)
	sb.WriteString(">>")
	return sb.String()
}
