package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/jamdr/jamdr/internal/layout"
)

type glyphKey struct {
	r rune
	v layout.FontVariant
}

type advance struct {
	width float64
	ok    bool
}

// Metrics resolves advance widths in thousandths of an em.
type Metrics struct {
	set   *Set
	buf   sfnt.Buffer
	cache map[glyphKey]advance
}

var _ layout.Metrics = (*Metrics)(nil)

// Advance returns the advance width of r in v. It reports false when the
// face has no glyph for r.
func (m *Metrics) Advance(r rune, v layout.FontVariant) (float64, bool) {
	key := glyphKey{r: r, v: v}
	if a, ok := m.cache[key]; ok {
		return a.width, a.ok
	}
	a := m.lookup(r, v)
	m.cache[key] = a
	return a.width, a.ok
}

func (m *Metrics) lookup(r rune, v layout.FontVariant) advance {
	if v < layout.Regular || v > layout.BoldItalic {
		v = layout.Regular
	}
	f := m.set.faces[v]
	idx, err := f.GlyphIndex(&m.buf, r)
	if err != nil || idx == 0 {
		return advance{}
	}
	upem := f.UnitsPerEm()
	// Requesting the advance at ppem == unitsPerEm yields font units.
	adv, err := f.GlyphAdvance(&m.buf, idx, fixed.Int26_6(upem)<<6, font.HintingNone)
	if err != nil {
		return advance{}
	}
	units := float64(adv) / 64
	return advance{width: units * 1000 / float64(upem), ok: true}
}
