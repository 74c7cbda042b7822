package jamdr

import (
	"context"
	"fmt"

	"github.com/jamdr/jamdr/internal/pipeline"
)

// HTMLBackend renders styled HTML pages.
type HTMLBackend struct {
	cfg settings
}

// NewHTMLBackend creates an HTMLBackend.
func NewHTMLBackend(opts ...Option) (*HTMLBackend, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &HTMLBackend{cfg: cfg}, nil
}

// RenderFiles converts every document to a full HTML page using tmpl and css.
func (b *HTMLBackend) RenderFiles(ctx context.Context, files map[string]string, tmpl, css string) (map[string][]byte, error) {
	templater, err := newTemplater(tmpl)
	if err != nil {
		return nil, err
	}
	return renderBatch(ctx, files, b.cfg.workers, func() renderFunc {
		page := newPageBuilder(templater, css)
		return func(ctx context.Context, path, markdown string) ([]byte, error) {
			html, err := page.build(ctx, path, markdown)
			if err != nil {
				return nil, err
			}
			return []byte(html), nil
		}
	})
}

// Close is a no-op.
func (b *HTMLBackend) Close() error { return nil }

func newTemplater(tmpl string) (*pipeline.Templater, error) {
	content, err := defaultTemplate(tmpl)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	return pipeline.NewTemplater(content)
}

// pageBuilder turns markdown into a templated HTML page. Not safe for
// concurrent use.
type pageBuilder struct {
	pre       pipeline.Preprocessor
	converter pipeline.HTMLConverter
	templater *pipeline.Templater
	css       string
}

func newPageBuilder(templater *pipeline.Templater, css string) *pageBuilder {
	return &pageBuilder{
		pre:       pipeline.Preprocessor{Highlights: true},
		converter: pipeline.NewGoldmarkConverter(),
		templater: templater,
		css:       css,
	}
}

func (p *pageBuilder) build(ctx context.Context, path, markdown string) (string, error) {
	content := p.pre.Apply(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fragment, err := p.converter.ToHTML(ctx, content)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}

	return p.templater.Render(ctx, pipeline.NewDocument(documentTitle(path), fragment, p.css))
}
