package report

import "time"

// paginator threads a Cursor through the drawing steps of one render
// pass. It is never shared across calls.
type paginator struct {
	layout Layout
	wm     string
	stamp  string
	pages  []Page
	cur    Cursor
}

// Paginate lays out spec into per-page command sequences. The clock
// value feeds the footer timestamp; it is captured once so every page
// of one render carries the same stamp.
//
// Page breaks are decided before drawing each unit of content: a
// heading needs the cursor above HeadingFloor, a wrapped bullet line
// above LineFloor. A unit is never split across the check boundary,
// and the watermark is redrawn on every page the overflow creates.
func Paginate(spec ReportSpec, layout Layout, now time.Time) ([]Page, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	p := &paginator{
		layout: layout,
		wm:     spec.WatermarkText,
		stamp:  now.Format(layout.TimestampFormat),
	}
	p.startPage()

	p.add(Command{
		X:     layout.MarginX,
		Y:     p.cur.Y,
		Font:  FontBold,
		Size:  layout.TitleSize,
		Color: layout.TitleColor,
		Text:  spec.Title,
		Role:  RoleTitle,
	})
	p.cur.Y -= layout.TitleDrop

	p.add(Command{
		X:     layout.MarginX,
		Y:     p.cur.Y,
		Font:  FontRegular,
		Size:  layout.SubtitleSize,
		Color: layout.SubtitleColor,
		Text:  layout.Subtitle,
		Role:  RoleSubtitle,
	})
	p.cur.Y -= layout.SubtitleDrop

	for _, sec := range spec.Sections {
		if p.cur.Y < layout.HeadingFloor {
			p.breakPage()
		}
		p.add(Command{
			X:     layout.MarginX,
			Y:     p.cur.Y,
			Font:  FontBold,
			Size:  layout.HeadingSize,
			Color: layout.BodyColor,
			Text:  sec.Heading,
			Role:  RoleHeading,
		})
		p.cur.Y -= layout.HeadingDrop

		for _, bullet := range sec.Bullets {
			lines := WrapFixed(layout.BulletPrefix+bullet, layout.WrapWidth)
			for _, line := range lines {
				if p.cur.Y < layout.LineFloor {
					p.breakPage()
				}
				p.add(Command{
					X:     layout.MarginX,
					Y:     p.cur.Y,
					Font:  FontRegular,
					Size:  layout.BodySize,
					Color: layout.BodyColor,
					Text:  line,
					Role:  RoleBullet,
				})
				p.cur.Y -= layout.LineDrop
			}
		}
		p.cur.Y -= layout.SectionGap
	}

	p.closePage()
	return p.pages, nil
}

func (p *paginator) add(cmd Command) {
	page := &p.pages[p.cur.PageIndex]
	page.Commands = append(page.Commands, cmd)
}

// startPage opens a fresh page, stamps the watermark, and resets the
// cursor to the top offset.
func (p *paginator) startPage() {
	p.pages = append(p.pages, Page{})
	p.cur.PageIndex = len(p.pages) - 1
	p.cur.Y = p.layout.PageHeight - p.layout.TopOffset

	p.add(Command{
		X:        p.layout.PageWidth / 2,
		Y:        p.layout.PageHeight / 2,
		Font:     FontBold,
		Size:     p.layout.WatermarkSize,
		Color:    p.layout.WatermarkColor,
		Anchor:   AnchorCenter,
		Rotation: p.layout.WatermarkRotation,
		Text:     p.wm,
		Role:     RoleWatermark,
	})
}

// closePage draws the footer pair: watermark text on the left, the
// generation timestamp on the right.
func (p *paginator) closePage() {
	p.add(Command{
		X:     p.layout.MarginX,
		Y:     p.layout.FooterY,
		Font:  FontRegular,
		Size:  p.layout.FooterSize,
		Color: p.layout.FooterColor,
		Text:  p.wm,
		Role:  RoleFooter,
	})
	p.add(Command{
		X:      p.layout.PageWidth - p.layout.MarginX,
		Y:      p.layout.FooterY,
		Font:   FontRegular,
		Size:   p.layout.FooterSize,
		Color:  p.layout.FooterColor,
		Anchor: AnchorRight,
		Text:   p.stamp,
		Role:   RoleStamp,
	})
}

func (p *paginator) breakPage() {
	p.closePage()
	p.startPage()
}
