package report

// Inch is one inch in PDF points.
const Inch = 72.0

// Font selects one of the two built-in page fonts.
type Font int

const (
	// FontRegular is Helvetica, used for subtitle, bullet lines,
	// and the footer.
	FontRegular Font = iota

	// FontBold is Helvetica-Bold, used for the title, headings,
	// and the watermark.
	FontBold
)

// Anchor controls how a command's text aligns to its position.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorCenter
	AnchorRight
)

// Role tags a command with the layout unit it draws, so tests can
// assert coverage properties (one watermark per page, no line below
// its floor) without parsing PDF bytes.
type Role string

const (
	RoleTitle     Role = "title"
	RoleSubtitle  Role = "subtitle"
	RoleHeading   Role = "heading"
	RoleBullet    Role = "bullet"
	RoleWatermark Role = "watermark"
	RoleFooter    Role = "footer"
	RoleStamp     Role = "stamp"
)

// RGBA is a fill color with alpha in the 0..1 range.
type RGBA struct {
	R, G, B, A float64
}

// Command is a single text drawing instruction. X and Y position the
// baseline (anchored per Anchor); Rotation is counterclockwise degrees
// about that point.
type Command struct {
	X        float64
	Y        float64
	Font     Font
	Size     float64
	Color    RGBA
	Anchor   Anchor
	Rotation float64
	Text     string
	Role     Role
}

// Page accumulates the drawing commands for one output page in draw
// order: watermark first, content, footer last.
type Page struct {
	Commands []Command
}

// Layout holds the page geometry and typography constants. All
// dimensions are PDF points with the origin at the bottom-left corner
// of the page. The zero value is not usable; start from DefaultLayout.
type Layout struct {
	PageWidth  float64 `json:"page_width" yaml:"page_width"`
	PageHeight float64 `json:"page_height" yaml:"page_height"`

	// MarginX is the horizontal inset for left-anchored content and
	// the footer. TopOffset is how far below the top edge the first
	// baseline of each page sits.
	MarginX   float64 `json:"margin_x" yaml:"margin_x"`
	TopOffset float64 `json:"top_offset" yaml:"top_offset"`

	// HeadingFloor and LineFloor are the bottom safety thresholds: a
	// heading never starts below HeadingFloor and a wrapped bullet
	// line never draws below LineFloor. The check happens before
	// drawing each unit, never after.
	HeadingFloor float64 `json:"heading_floor" yaml:"heading_floor"`
	LineFloor    float64 `json:"line_floor" yaml:"line_floor"`

	TitleSize    float64 `json:"title_size" yaml:"title_size"`
	TitleDrop    float64 `json:"title_drop" yaml:"title_drop"`
	Subtitle     string  `json:"subtitle" yaml:"subtitle"`
	SubtitleSize float64 `json:"subtitle_size" yaml:"subtitle_size"`
	SubtitleDrop float64 `json:"subtitle_drop" yaml:"subtitle_drop"`
	HeadingSize  float64 `json:"heading_size" yaml:"heading_size"`
	HeadingDrop  float64 `json:"heading_drop" yaml:"heading_drop"`
	BodySize     float64 `json:"body_size" yaml:"body_size"`
	LineDrop     float64 `json:"line_drop" yaml:"line_drop"`
	SectionGap   float64 `json:"section_gap" yaml:"section_gap"`

	// WrapWidth is the fixed rune count a prefixed bullet wraps at.
	// Wrapping is by character count, not word boundaries.
	WrapWidth    int    `json:"wrap_width" yaml:"wrap_width"`
	BulletPrefix string `json:"bullet_prefix" yaml:"bullet_prefix"`

	WatermarkSize     float64 `json:"watermark_size" yaml:"watermark_size"`
	WatermarkRotation float64 `json:"watermark_rotation" yaml:"watermark_rotation"`
	FooterSize        float64 `json:"footer_size" yaml:"footer_size"`
	FooterY           float64 `json:"footer_y" yaml:"footer_y"`

	// TimestampFormat is the Go reference layout for the footer's
	// generation timestamp.
	TimestampFormat string `json:"timestamp_format" yaml:"timestamp_format"`

	TitleColor     RGBA `json:"-" yaml:"-"`
	SubtitleColor  RGBA `json:"-" yaml:"-"`
	BodyColor      RGBA `json:"-" yaml:"-"`
	WatermarkColor RGBA `json:"-" yaml:"-"`
	FooterColor    RGBA `json:"-" yaml:"-"`
}

// DefaultLayout returns the US-letter layout the proposal ships with.
// The thresholds and wrap width are tuned for this page size and these
// font sizes; change them together or not at all.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  612, // 8.5in
		PageHeight: 792, // 11in

		MarginX:   0.7 * Inch,
		TopOffset: 0.9 * Inch,

		HeadingFloor: 1.3 * Inch,
		LineFloor:    1.1 * Inch,

		TitleSize:    18,
		TitleDrop:    0.35 * Inch,
		Subtitle:     "Pilot Proposal • Six Sigma Black Belt format • DMAIC governed",
		SubtitleSize: 10,
		SubtitleDrop: 0.30 * Inch,
		HeadingSize:  12,
		HeadingDrop:  0.22 * Inch,
		BodySize:     10,
		LineDrop:     0.18 * Inch,
		SectionGap:   0.12 * Inch,

		WrapWidth:    110,
		BulletPrefix: "• ",

		WatermarkSize:     36,
		WatermarkRotation: 30,
		FooterSize:        9,
		FooterY:           0.45 * Inch,

		TimestampFormat: "2006-01-02 15:04",

		TitleColor:     RGBA{0.9, 0.95, 1.0, 1.0},
		SubtitleColor:  RGBA{0.8, 0.85, 0.95, 1.0},
		BodyColor:      RGBA{0.95, 0.98, 1.0, 1.0},
		WatermarkColor: RGBA{0.65, 0.75, 0.95, 0.12},
		FooterColor:    RGBA{0.7, 0.75, 0.9, 0.55},
	}
}
