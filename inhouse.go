package jamdr

import (
	"context"

	"github.com/jamdr/jamdr/internal/fonts"
	"github.com/jamdr/jamdr/internal/layout"
	"github.com/jamdr/jamdr/internal/markup"
	"github.com/jamdr/jamdr/internal/pdfwriter"
	"github.com/jamdr/jamdr/internal/pipeline"
)

// InhouseBackend renders PDF with the built-in layout engine. It ignores
// the template and stylesheet.
type InhouseBackend struct {
	cfg    settings
	fonts  *fonts.Set
	layout layout.Config
}

// NewInhouseBackend loads the fonts and validates the layout. A missing or
// unreadable font file fails here, before any document is rendered.
func NewInhouseBackend(opts ...Option) (*InhouseBackend, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	lc, err := cfg.layout.config(cfg.page)
	if err != nil {
		return nil, err
	}
	set, err := fonts.Load(cfg.fontDir)
	if err != nil {
		return nil, err
	}
	return &InhouseBackend{cfg: cfg, fonts: set, layout: lc}, nil
}

// FontSource describes where the fonts were loaded from.
func (b *InhouseBackend) FontSource() string { return b.fonts.Source() }

// RenderFiles lays out every document into a PDF.
func (b *InhouseBackend) RenderFiles(ctx context.Context, files map[string]string, _, _ string) (map[string][]byte, error) {
	return renderBatch(ctx, files, b.cfg.workers, b.newWorker)
}

// newWorker gives each goroutine its own tokenizer and glyph cache. Parsed
// fonts are shared read-only.
func (b *InhouseBackend) newWorker() renderFunc {
	tok := markup.NewTokenizer()
	metrics := b.fonts.Metrics()
	pre := pipeline.Preprocessor{}

	return func(ctx context.Context, path, markdown string) ([]byte, error) {
		events, err := tok.Tokenize(ctx, pre.Apply(ctx, markdown))
		if err != nil {
			return nil, err
		}
		w := pdfwriter.New(b.layout.Page, b.fonts, pdfwriter.Options{
			Title:        documentTitle(path),
			Creator:      creator,
			CreationDate: b.cfg.now(),
		})
		return layout.Render(ctx, layout.FromSlice(events), w, metrics, b.layout)
	}
}

// Close is a no-op; the inhouse backend holds no external resources.
func (b *InhouseBackend) Close() error { return nil }
