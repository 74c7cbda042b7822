package jamdr

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/jamdr/jamdr/internal/assets"
)

// Backend renders a batch of markdown documents.
//
// files maps a source path to its markdown. tmpl and css are the HTML
// document template and stylesheet; backends that do not produce HTML
// ignore them and an empty tmpl selects the bundled template. On success
// the result has the same keys as files.
type Backend interface {
	RenderFiles(ctx context.Context, files map[string]string, tmpl, css string) (map[string][]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ Backend = (*InhouseBackend)(nil)
	_ Backend = (*ChromiumBackend)(nil)
	_ Backend = (*HTMLBackend)(nil)
)

// NewBackend returns the backend producing typ. HTML output never needs a
// PDF backend, so backend is only consulted for PDF.
func NewBackend(backend BackendType, typ OutputType, opts ...Option) (Backend, error) {
	switch typ {
	case OutputHTML:
		return NewHTMLBackend(opts...)
	case OutputPDF, "":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutputType, typ)
	}

	switch backend {
	case BackendInhouse, "":
		return NewInhouseBackend(opts...)
	case BackendChromium:
		return NewChromiumBackend(opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// renderFunc renders one document. Each worker owns one, so it may hold
// state that is not safe for concurrent use.
type renderFunc func(ctx context.Context, path, markdown string) ([]byte, error)

// renderBatch renders files with at most workers goroutines. newWorker is
// called once per goroutine. Per-document failures are collected as
// *FileError values in path order.
func renderBatch(ctx context.Context, files map[string]string, workers int, newWorker func() renderFunc) (map[string][]byte, error) {
	if len(files) == 0 {
		return map[string][]byte{}, nil
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	concurrency := min(ResolvePoolSize(workers), len(paths))

	type result struct {
		out []byte
		err error
	}
	results := make([]result, len(paths))
	var wg sync.WaitGroup
	jobs := make(chan int, len(paths))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			render := newWorker()
			for idx := range jobs {
				p := paths[idx]
				out, err := renderOne(ctx, render, p, files[p])
				results[idx] = result{out: out, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	rendered := make(map[string][]byte, len(paths))
	var errs []error
	for i, r := range results {
		if r.err != nil {
			errs = append(errs, &FileError{Path: paths[i], Err: r.err})
			continue
		}
		rendered[paths[i]] = r.out
	}
	return rendered, errors.Join(errs...)
}

// renderOne runs render and recovers internal panics into errors.
func renderOne(ctx context.Context, render renderFunc, path, markdown string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return render(ctx, path, markdown)
}

// documentTitle derives a title from a source path.
func documentTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// defaultTemplate returns tmpl, or the bundled template when tmpl is empty.
func defaultTemplate(tmpl string) (string, error) {
	if tmpl != "" {
		return tmpl, nil
	}
	return assets.NewEmbeddedLoader().LoadTemplate(assets.DefaultTemplateName)
}
