// Package config loads jamdr YAML configuration files.
//
// A config is looked up by name as ./name.yaml, ./name.yml, then under the
// user config directory (for example ~/.config/jamdr/name.yaml). Values left
// empty or zero fall back to the command-line flag defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jamdr/jamdr/internal/fileutil"
	"github.com/jamdr/jamdr/internal/yamlutil"
)

// DirName is the directory under the user config dir searched for configs.
const DirName = "jamdr"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxNameLength        = 100
	MaxPageSizeLength    = 10
	MaxOrientationLength = 10
	MaxDurationLength    = 20
)

// Accepted enumerations.
var (
	Backends     = []string{"inhouse", "chromium"}
	OutputTypes  = []string{"pdf", "html"}
	HeadingRules = []string{"full", "text", "none"}
)

// Config holds every option that can also be set from the command line.
type Config struct {
	Backend string       `yaml:"backend"` // inhouse | chromium
	Type    string       `yaml:"type"`    // pdf | html
	Workers int          `yaml:"workers"` // 0 = automatic
	Timeout string       `yaml:"timeout"` // Go duration, chromium only
	Output  OutputConfig `yaml:"output"`
	Style   StyleConfig  `yaml:"style"`
	Assets  AssetsConfig `yaml:"assets"`
	Page    PageConfig   `yaml:"page"`
	Layout  LayoutConfig `yaml:"layout"`
	Fonts   FontsConfig  `yaml:"fonts"`
}

// OutputConfig sets where rendered files go.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = next to the source
}

// StyleConfig selects the HTML look.
type StyleConfig struct {
	Name     string `yaml:"name"`     // bundled or basePath style
	CSS      string `yaml:"css"`      // stylesheet file, wins over name
	Template string `yaml:"template"` // bundled or basePath template
}

// AssetsConfig points at a directory overriding bundled assets.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"`
}

// PageConfig describes the paper.
type PageConfig struct {
	Size        string  `yaml:"size"`        // letter | a4 | legal
	Orientation string  `yaml:"orientation"` // portrait | landscape
	Margin      float64 `yaml:"margin"`      // inches
}

// LayoutConfig tunes the inhouse layout engine. Sizes are in points.
type LayoutConfig struct {
	BodySize        float64 `yaml:"bodySize"`
	HeaderBase      float64 `yaml:"headerBase"`
	HeaderIncrement float64 `yaml:"headerIncrement"`
	LineHeight      float64 `yaml:"lineHeight"`
	HeadingRule     string  `yaml:"headingRule"` // full | text | none
	ListIndent      float64 `yaml:"listIndent"`
	Paginate        bool    `yaml:"paginate"`
}

// FontsConfig points at a directory with the four TrueType variants.
type FontsConfig struct {
	Dir string `yaml:"dir"`
}

// Validate checks lengths, enumerations and numeric ranges.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"style.name", c.Style.Name, MaxNameLength},
		{"style.css", c.Style.CSS, MaxPathLength},
		{"style.template", c.Style.Template, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"fonts.dir", c.Fonts.Dir, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"timeout", c.Timeout, MaxDurationLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := validateEnum("backend", c.Backend, Backends); err != nil {
		return err
	}
	if err := validateEnum("type", c.Type, OutputTypes); err != nil {
		return err
	}
	if err := validateEnum("layout.headingRule", c.Layout.HeadingRule, HeadingRules); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > 64 {
		return fmt.Errorf("%w: workers must be between 0 and 64, got %d", ErrInvalidValue, c.Workers)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: timeout %q is not a positive duration", ErrInvalidValue, c.Timeout)
		}
	}
	if c.Page.Margin < 0 || c.Page.Margin > 3 {
		return fmt.Errorf("%w: page.margin must be between 0 and 3 inches, got %g", ErrInvalidValue, c.Page.Margin)
	}

	sizes := []struct {
		field string
		value float64
	}{
		{"layout.bodySize", c.Layout.BodySize},
		{"layout.headerBase", c.Layout.HeaderBase},
		{"layout.headerIncrement", c.Layout.HeaderIncrement},
		{"layout.lineHeight", c.Layout.LineHeight},
		{"layout.listIndent", c.Layout.ListIndent},
	}
	for _, s := range sizes {
		if s.value < 0 || s.value > 200 {
			return fmt.Errorf("%w: %s must be between 0 and 200, got %g", ErrInvalidValue, s.field, s.value)
		}
	}
	return nil
}

func validateFieldLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, field, len(value), maxLength)
	}
	return nil
}

func validateEnum(field, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, field, value, strings.Join(allowed, ", "))
}

// LoadConfig reads a config by file path or by name. A value containing a
// path separator is a path; anything else is searched with SearchPaths.
// A missing config is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if path, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists, in order, the files tried for a config name.
func SearchPaths(name string) []string {
	var paths []string
	exts := []string{".yaml", ".yml"}
	for _, ext := range exts {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, DirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
