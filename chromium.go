package jamdr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/jamdr/jamdr/internal/fileutil"
	"github.com/jamdr/jamdr/internal/pipeline"
	"github.com/jamdr/jamdr/internal/process"
)

// pdfRenderer prints a local HTML file to PDF. Abstracted so the backend
// can be tested without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, page PageSettings) ([]byte, error)
	Close() error
}

var _ pdfRenderer = (*rodRenderer)(nil)

// ChromiumBackend prints templated HTML with headless Chrome. Browsers are
// pooled and reused across calls until Close.
type ChromiumBackend struct {
	cfg  settings
	pool *lazyPool[pdfRenderer]
}

// NewChromiumBackend creates a ChromiumBackend. Browsers start lazily on
// the first document.
func NewChromiumBackend(opts ...Option) (*ChromiumBackend, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return newChromiumBackend(cfg, func() pdfRenderer {
		return newRodRenderer(cfg.timeout)
	}), nil
}

func newChromiumBackend(cfg settings, newRenderer func() pdfRenderer) *ChromiumBackend {
	return &ChromiumBackend{
		cfg:  cfg,
		pool: newLazyPool(ResolvePoolSize(cfg.workers), newRenderer),
	}
}

// RenderFiles converts each document to HTML, rewrites relative image and
// link paths against the document's directory, and prints it.
func (b *ChromiumBackend) RenderFiles(ctx context.Context, files map[string]string, tmpl, css string) (map[string][]byte, error) {
	templater, err := newTemplater(tmpl)
	if err != nil {
		return nil, err
	}
	return renderBatch(ctx, files, b.cfg.workers, func() renderFunc {
		page := newPageBuilder(templater, css)
		return func(ctx context.Context, path, markdown string) ([]byte, error) {
			return b.print(ctx, page, path, markdown)
		}
	})
}

func (b *ChromiumBackend) print(ctx context.Context, page *pageBuilder, path, markdown string) ([]byte, error) {
	htmlContent, err := page.build(ctx, path, markdown)
	if err != nil {
		return nil, err
	}

	sourceDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving source directory: %w", err)
	}
	htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, sourceDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	r := b.pool.Acquire()
	defer b.pool.Release(r)
	return r.RenderFromFile(ctx, tmpPath, b.cfg.page)
}

// Close shuts down every browser started by the backend.
func (b *ChromiumBackend) Close() error {
	return b.pool.Close()
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killBrowser()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources. The browser process tree is killed even
// when the graceful close fails.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killBrowser()
	return err
}

func (r *rodRenderer) killBrowser() {
	if r.launcher == nil {
		return
	}
	process.KillGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, settings PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOptions(settings))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// printOptions maps page settings to Chrome's print parameters, in inches.
func printOptions(settings PageSettings) *proto.PagePrintToPDF {
	width, height, margin := settings.Inches()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
