package layout

import "strings"

// FontVariant selects one of the four faces of the document font.
type FontVariant int

const (
	Regular FontVariant = iota
	Bold
	Italic
	BoldItalic
)

// Variants lists every font variant in index order.
var Variants = [...]FontVariant{Regular, Bold, Italic, BoldItalic}

func (v FontVariant) String() string {
	switch v {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	default:
		return "regular"
	}
}

// VariantFor maps a (bold, italic) pair to its font variant.
func VariantFor(bold, italic bool) FontVariant {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return Regular
	}
}

// Metrics resolves glyph advance widths in thousandths of an em.
// A false result means the rune has no glyph in the variant.
type Metrics interface {
	Advance(r rune, v FontVariant) (float64, bool)
}

const (
	unitsPerEm = 1000.0

	// FallbackAdvance is the width, in thousandths of an em, used for runes
	// the metrics resolver cannot map.
	FallbackAdvance = 1000.0
)

// Style is the typography applied to text. It is a value: every With method
// returns a modified copy.
type Style struct {
	Bold            bool
	Italic          bool
	Strikethrough   bool
	Size            float64
	LineHeightScale float64
}

// WithBold returns s with the bold flag set to on.
func (s Style) WithBold(on bool) Style {
	s.Bold = on
	return s
}

// WithItalic returns s with the italic flag set to on.
func (s Style) WithItalic(on bool) Style {
	s.Italic = on
	return s
}

// WithStrikethrough returns s with the strikethrough flag set to on.
func (s Style) WithStrikethrough(on bool) Style {
	s.Strikethrough = on
	return s
}

// WithSize returns s at size points.
func (s Style) WithSize(size float64) Style {
	s.Size = size
	return s
}

// Variant returns the font variant selected by the bold and italic flags.
func (s Style) Variant() FontVariant { return VariantFor(s.Bold, s.Italic) }

// LineHeight returns the baseline-to-baseline distance in points.
func (s Style) LineHeight() float64 { return s.Size * s.LineHeightScale }

// flag returns the flag toggled by a span kind.
func (s Style) flag(k BlockKind) bool {
	switch k {
	case BlockStrong:
		return s.Bold
	case BlockEmphasis:
		return s.Italic
	case BlockStrikethrough:
		return s.Strikethrough
	}
	return false
}

func (s Style) withFlag(k BlockKind, on bool) Style {
	switch k {
	case BlockStrong:
		return s.WithBold(on)
	case BlockEmphasis:
		return s.WithItalic(on)
	case BlockStrikethrough:
		return s.WithStrikethrough(on)
	}
	return s
}

// Replacement is drawn in place of runes outside the Basic Multilingual
// Plane, which PDF font subsets cannot address.
const Replacement = '\uFFFD'

// Drawable returns s with every rune above U+FFFF replaced by Replacement.
func Drawable(s string) string {
	for _, r := range s {
		if r > 0xFFFF {
			return strings.Map(func(r rune) rune {
				if r > 0xFFFF {
					return Replacement
				}
				return r
			}, s)
		}
	}
	return s
}

// Measure returns the advance width of text in points. Runes the resolver
// misses count as FallbackAdvance.
func Measure(m Metrics, text string, s Style) float64 {
	v := s.Variant()
	var units float64
	for _, r := range text {
		adv, ok := m.Advance(r, v)
		if !ok {
			adv = FallbackAdvance
		}
		units += adv
	}
	return units * s.Size / unitsPerEm
}
