package jamdr

import (
	"fmt"
	"strings"

	"github.com/jamdr/jamdr/internal/layout"
)

// BackendType selects the PDF backend.
type BackendType string

const (
	BackendInhouse  BackendType = "inhouse"
	BackendChromium BackendType = "chromium"
)

// ParseBackend parses a backend name (case-insensitive). Empty selects
// the inhouse backend.
func ParseBackend(s string) (BackendType, error) {
	switch b := BackendType(strings.ToLower(s)); b {
	case "":
		return BackendInhouse, nil
	case BackendInhouse, BackendChromium:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q (must be inhouse or chromium)", ErrUnknownBackend, s)
}

// OutputType selects the rendered format.
type OutputType string

const (
	OutputPDF  OutputType = "pdf"
	OutputHTML OutputType = "html"
)

// ParseOutputType parses an output type (case-insensitive). Empty selects PDF.
func ParseOutputType(s string) (OutputType, error) {
	switch t := OutputType(strings.ToLower(s)); t {
	case "":
		return OutputPDF, nil
	case OutputPDF, OutputHTML:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q (must be pdf or html)", ErrUnknownOutputType, s)
}

// Ext returns the file extension of the output type, with a leading dot.
func (t OutputType) Ext() string {
	if t == OutputHTML {
		return ".html"
	}
	return ".pdf"
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 1.0
)

const pointsPerInch = 72.0

// paperSizes holds portrait dimensions in points.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {612, 792},
	PageSizeA4:     {595.28, 841.89},
	PageSizeLegal:  {612, 1008},
}

// PageSettings configures page dimensions. Zero fields take defaults.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter portrait with one inch margins.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// withDefaults fills zero fields and lowercases the names.
func (p PageSettings) withDefaults() PageSettings {
	d := DefaultPageSettings()
	if p.Size != "" {
		d.Size = strings.ToLower(p.Size)
	}
	if p.Orientation != "" {
		d.Orientation = strings.ToLower(p.Orientation)
	}
	if p.Margin != 0 {
		d.Margin = p.Margin
	}
	return d
}

// Validate checks that page settings are valid. Zero fields are valid.
// Does not mutate.
func (p PageSettings) Validate() error {
	p = p.withDefaults()
	if _, ok := paperSizes[p.Size]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if p.Orientation != OrientationPortrait && p.Orientation != OrientationLandscape {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// Inches returns the paper width, height and margin in inches.
func (p PageSettings) Inches() (width, height, margin float64) {
	pg := p.points()
	return pg.Width / pointsPerInch, pg.Height / pointsPerInch, pg.Margin / pointsPerInch
}

// points converts validated settings to layout geometry.
func (p PageSettings) points() layout.Page {
	p = p.withDefaults()
	size := paperSizes[p.Size]
	w, h := size[0], size[1]
	if p.Orientation == OrientationLandscape {
		w, h = h, w
	}
	return layout.Page{Width: w, Height: h, Margin: p.Margin * pointsPerInch}
}

// LayoutSettings tunes the inhouse layout engine. Sizes are in points and
// zero fields take the engine defaults.
type LayoutSettings struct {
	BodySize        float64
	HeaderBase      float64 // level-1 heading size
	HeaderIncrement float64 // size step between heading levels
	LineHeight      float64 // multiple of the font size
	HeadingRule     string  // "full", "text" or "none"
	ListIndent      float64
	Paginate        bool
}

// config builds the engine configuration for page.
func (l LayoutSettings) config(page PageSettings) (layout.Config, error) {
	cfg := layout.DefaultConfig()
	cfg.Page = page.points()
	if l.BodySize != 0 {
		cfg.BodySize = l.BodySize
	}
	if l.HeaderBase != 0 {
		cfg.HeaderBase = l.HeaderBase
	}
	if l.HeaderIncrement != 0 {
		cfg.HeaderIncrement = l.HeaderIncrement
	}
	if l.LineHeight != 0 {
		cfg.LineHeightScale = l.LineHeight
	}
	if l.HeadingRule != "" {
		cfg.HeadingRule = layout.HeadingRule(strings.ToLower(l.HeadingRule))
	}
	if l.ListIndent != 0 {
		cfg.ListIndent = l.ListIndent
	}
	cfg.Paginate = l.Paginate
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return cfg, nil
}
