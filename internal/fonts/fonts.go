// Package fonts loads the four document font variants and resolves glyph
// advance widths from them.
//
// The embedded Go fonts are used unless a directory with regular.ttf,
// bold.ttf, italic.ttf and bold-italic.ttf is supplied. A Set is immutable
// and safe to share; each rendering goroutine takes its own Metrics.
package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/jamdr/jamdr/internal/layout"
)

// Sentinel errors for font loading.
var (
	ErrFontNotFound = errors.New("font asset not found")
	ErrFontParse    = errors.New("font asset is not a valid TrueType font")
)

// FileNames maps each variant to the file expected in a font directory.
var FileNames = [...]string{
	layout.Regular:    "regular.ttf",
	layout.Bold:       "bold.ttf",
	layout.Italic:     "italic.ttf",
	layout.BoldItalic: "bold-italic.ttf",
}

// Set holds the raw bytes and parsed faces of the four variants.
type Set struct {
	source string
	data   [4][]byte
	faces  [4]*sfnt.Font
}

// Embedded returns the Go font family compiled into the binary.
func Embedded() (*Set, error) {
	return newSet("embedded Go fonts", [4][]byte{
		layout.Regular:    goregular.TTF,
		layout.Bold:       gobold.TTF,
		layout.Italic:     goitalic.TTF,
		layout.BoldItalic: gobolditalic.TTF,
	})
}

// LoadDir reads the four variants from dir. Every file must be present.
func LoadDir(dir string) (*Set, error) {
	var data [4][]byte
	for v, name := range FileNames {
		path := filepath.Join(dir, name)
		b, err := os.ReadFile(path) // #nosec G304 -- user-provided font directory
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
			}
			return nil, fmt.Errorf("reading font %s: %w", path, err)
		}
		data[v] = b
	}
	return newSet(dir, data)
}

// Load returns the fonts in dir, or the embedded fonts when dir is empty.
func Load(dir string) (*Set, error) {
	if dir == "" {
		return Embedded()
	}
	return LoadDir(dir)
}

func newSet(source string, data [4][]byte) (*Set, error) {
	s := &Set{source: source, data: data}
	for v, b := range data {
		f, err := sfnt.Parse(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (%s): %v", ErrFontParse, FileNames[v], source, err)
		}
		s.faces[v] = f
	}
	return s, nil
}

// Source describes where the fonts were loaded from.
func (s *Set) Source() string { return s.source }

// Data returns the TrueType bytes of a variant.
func (s *Set) Data(v layout.FontVariant) []byte {
	if v < layout.Regular || v > layout.BoldItalic {
		v = layout.Regular
	}
	return s.data[v]
}

// Metrics returns a new resolver over the set. A Metrics is not safe for
// concurrent use.
func (s *Set) Metrics() *Metrics {
	return &Metrics{set: s, cache: make(map[glyphKey]advance)}
}
