package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName    = "light"
	DarkStyleName       = "dark"
	DefaultTemplateName = "default"
)

// AssetLoader loads stylesheets and document templates by name.
type AssetLoader interface {
	// LoadStyle returns the CSS named name (without .css).
	LoadStyle(name string) (string, error)
	// LoadTemplate returns the HTML template named name (without .html).
	LoadTemplate(name string) (string, error)
}

// kind describes one asset family on disk and in the embedded tree.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// ValidateAssetName rejects empty names and names containing path
// separators or dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}
