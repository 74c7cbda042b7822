package layout

import "fmt"

// HeadingRule controls the underline drawn beneath headings.
type HeadingRule string

const (
	HeadingRuleFull HeadingRule = "full" // full content width
	HeadingRuleText HeadingRule = "text" // rendered text width
	HeadingRuleNone HeadingRule = "none"
)

// Valid reports whether r is a known heading rule mode.
func (r HeadingRule) Valid() bool {
	switch r {
	case HeadingRuleFull, HeadingRuleText, HeadingRuleNone:
		return true
	}
	return false
}

// Page describes the physical page in points.
type Page struct {
	Width  float64
	Height float64
	Margin float64
}

// ContentBox returns the area inside the margins.
func (p Page) ContentBox() Box {
	return Box{
		Left:   p.Margin,
		Right:  p.Width - p.Margin,
		Top:    p.Height - p.Margin,
		Bottom: p.Margin,
	}
}

// Config holds the typography and geometry of a render.
type Config struct {
	Page            Page
	BodySize        float64
	HeaderBase      float64 // size of a level-1 heading
	HeaderIncrement float64 // size step between heading levels
	LineHeightScale float64
	HeadingRule     HeadingRule
	ListIndent      float64
	RuleThickness   float64
	Paginate        bool
}

// Default values, in points unless noted.
const (
	DefaultPageWidth       = 612.0 // US Letter
	DefaultPageHeight      = 792.0
	DefaultMargin          = 72.0
	DefaultBodySize        = 12.0
	DefaultHeaderBase      = 24.0
	DefaultHeaderIncrement = 2.0
	DefaultLineHeightScale = 1.2
	DefaultListIndent      = 18.0
	DefaultRuleThickness   = 0.5
)

// DefaultConfig returns the default letter-size configuration.
func DefaultConfig() Config {
	return Config{
		Page:            Page{Width: DefaultPageWidth, Height: DefaultPageHeight, Margin: DefaultMargin},
		BodySize:        DefaultBodySize,
		HeaderBase:      DefaultHeaderBase,
		HeaderIncrement: DefaultHeaderIncrement,
		LineHeightScale: DefaultLineHeightScale,
		HeadingRule:     HeadingRuleFull,
		ListIndent:      DefaultListIndent,
		RuleThickness:   DefaultRuleThickness,
	}
}

// HeadingSize returns the font size of a heading level.
func (c Config) HeadingSize(level int) float64 {
	level = min(max(level, 1), 6)
	return c.HeaderBase - c.HeaderIncrement*float64(level-1)
}

func (c Config) bodyStyle() Style {
	return Style{Size: c.BodySize, LineHeightScale: c.LineHeightScale}
}

// Validate checks that the configuration describes a drawable page and
// strictly decreasing heading sizes.
func (c Config) Validate() error {
	switch {
	case c.Page.Width <= 0 || c.Page.Height <= 0:
		return fmt.Errorf("%w: page size %gx%g", ErrInvalidConfig, c.Page.Width, c.Page.Height)
	case c.Page.Margin < 0 || 2*c.Page.Margin >= c.Page.Width || 2*c.Page.Margin >= c.Page.Height:
		return fmt.Errorf("%w: margin %g leaves no content area", ErrInvalidConfig, c.Page.Margin)
	case c.BodySize <= 0:
		return fmt.Errorf("%w: body size must be positive, got %g", ErrInvalidConfig, c.BodySize)
	case c.HeaderIncrement <= 0:
		return fmt.Errorf("%w: header increment must be positive, got %g", ErrInvalidConfig, c.HeaderIncrement)
	case c.HeadingSize(6) <= 0:
		return fmt.Errorf("%w: header base %g too small for six levels", ErrInvalidConfig, c.HeaderBase)
	case c.LineHeightScale <= 0:
		return fmt.Errorf("%w: line height must be positive, got %g", ErrInvalidConfig, c.LineHeightScale)
	case c.ListIndent < 0:
		return fmt.Errorf("%w: list indent must not be negative, got %g", ErrInvalidConfig, c.ListIndent)
	case c.RuleThickness <= 0:
		return fmt.Errorf("%w: rule thickness must be positive, got %g", ErrInvalidConfig, c.RuleThickness)
	case !c.HeadingRule.Valid():
		return fmt.Errorf("%w: unknown heading rule %q", ErrInvalidConfig, c.HeadingRule)
	}
	return nil
}
