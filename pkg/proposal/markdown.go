package proposal

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dsgeops/pilotdeck/pkg/errors"
	"github.com/dsgeops/pilotdeck/pkg/report"
)

// LoadMarkdown turns a Markdown brief into a renderable spec: the
// first level-1 heading becomes the title, every later heading starts
// a section, and list items become that section's bullets. Other
// block content is ignored. The watermark is set to the default;
// callers overwrite it as needed.
func LoadMarkdown(r io.Reader) (report.ReportSpec, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return report.ReportSpec{}, errors.IOWrap(err, errors.ErrIOReadFailed, "read markdown brief")
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	spec := report.ReportSpec{WatermarkText: WatermarkText}
	var cur *report.Section

	flush := func() {
		if cur != nil {
			spec.Sections = append(spec.Sections, *cur)
			cur = nil
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && spec.Title == "" {
				spec.Title = nodeText(node, src)
				continue
			}
			flush()
			cur = &report.Section{Heading: nodeText(node, src)}

		case *ast.List:
			if cur == nil {
				continue
			}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				if t := nodeText(item, src); t != "" {
					cur.Bullets = append(cur.Bullets, t)
				}
			}
		}
	}
	flush()

	if spec.Title == "" {
		return report.ReportSpec{}, errors.Render(errors.ErrRenderSourceInvalid,
			"markdown brief has no level-1 title heading")
	}
	return spec, nil
}

// nodeText flattens the inline text under n, joining soft line breaks
// with spaces.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
