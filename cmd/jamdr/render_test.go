package main

// Notes:
// - renderJob.run is driven by a fake jamdr.Backend so partial failures and
//   batch-level errors can be produced without fonts or a browser
// - outputPath priority: stdout > --output > output dir > next to input

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamdr/jamdr"
	"github.com/jamdr/jamdr/internal/layout"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

type fakeBackend struct {
	fail  map[string]error
	batch error
	calls [][]string
}

func (f *fakeBackend) RenderFiles(_ context.Context, files map[string]string, _, _ string) (map[string][]byte, error) {
	if f.batch != nil {
		return nil, f.batch
	}
	var keys []string
	out := make(map[string][]byte)
	var errs []error
	for p, md := range files {
		keys = append(keys, p)
		if err, ok := f.fail[p]; ok {
			errs = append(errs, &jamdr.FileError{Path: p, Err: err})
			continue
		}
		out[p] = []byte("out:" + md)
	}
	f.calls = append(f.calls, keys)
	return out, errors.Join(errs...)
}

func (f *fakeBackend) Close() error { return nil }

// ---------------------------------------------------------------------------
// TestRenderJob_Run
// ---------------------------------------------------------------------------

func TestRenderJob_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes successes and reports failures", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		good := writeMarkdown(t, dir, "good.md", "g")
		bad := writeMarkdown(t, dir, "bad.md", "b")
		env, stdout, stderr := testEnv(nil)
		job := &renderJob{
			backend: &fakeBackend{fail: map[string]error{bad: layout.ErrUnsupportedEvent}},
			ext:     ".pdf",
			env:     env,
		}

		err := job.run(context.Background(), []string{good, bad})
		if !errors.Is(err, ErrRenderFailed) {
			t.Fatalf("error = %v, want ErrRenderFailed", err)
		}
		data, readErr := os.ReadFile(filepath.Join(dir, "good.pdf"))
		if readErr != nil || string(data) != "out:g" {
			t.Errorf("good.pdf = %q, %v", data, readErr)
		}
		if _, statErr := os.Stat(filepath.Join(dir, "bad.pdf")); !os.IsNotExist(statErr) {
			t.Error("bad.pdf should not exist")
		}
		if !strings.Contains(stderr.String(), "FAILED "+bad) {
			t.Errorf("stderr = %q", stderr)
		}
		if !strings.Contains(stdout.String(), "1 succeeded, 1 failed") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("batch error is returned as is", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeMarkdown(t, dir, "a.md", "a")
		env, _, _ := testEnv(nil)
		batchErr := errors.New("template exploded")
		job := &renderJob{backend: &fakeBackend{batch: batchErr}, ext: ".html", env: env}

		if err := job.run(context.Background(), []string{in}); !errors.Is(err, batchErr) {
			t.Errorf("error = %v, want %v", err, batchErr)
		}
	})

	t.Run("unreadable input fails before rendering", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeMarkdown(t, dir, "a.md", "a")
		env, _, _ := testEnv(nil)
		backend := &fakeBackend{}
		job := &renderJob{backend: backend, ext: ".pdf", env: env}

		err := job.run(context.Background(), []string{in, filepath.Join(dir, "missing.md")})
		if exitCodeFor(err) != ExitIO {
			t.Errorf("error = %v, want an I/O error", err)
		}
		if len(backend.calls) != 0 {
			t.Errorf("backend called %d time(s)", len(backend.calls))
		}
	})

	t.Run("stdout receives the document only", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeMarkdown(t, dir, "a.md", "body")
		env, stdout, _ := testEnv(nil)
		job := &renderJob{backend: &fakeBackend{}, ext: ".html", stdout: true, quiet: true, env: env}

		if err := job.run(context.Background(), []string{in}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout.String() != "out:body" {
			t.Errorf("stdout = %q", stdout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRenderJob_OutputPath
// ---------------------------------------------------------------------------

func TestRenderJob_OutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		job  renderJob
		in   string
		want string
	}{
		{"next to input", renderJob{ext: ".pdf"}, "docs/a.md", "docs/a.pdf"},
		{"html extension", renderJob{ext: ".html"}, "a.markdown", "a.html"},
		{"output dir", renderJob{ext: ".pdf", outputDir: "build"}, "docs/a.md", filepath.Join("build", "a.pdf")},
		{"explicit output wins", renderJob{ext: ".pdf", outputDir: "build", output: "x.pdf"}, "a.md", "x.pdf"},
		{"stdout wins", renderJob{ext: ".pdf", output: "x.pdf", stdout: true}, "a.md", "-"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.job.outputPath(tt.in); got != tt.want {
				t.Errorf("outputPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileErrors / TestPrintResults
// ---------------------------------------------------------------------------

func TestFileErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")
	joined := errors.Join(
		&jamdr.FileError{Path: "a.md", Err: errA},
		errors.New("not a file error"),
		fmt.Errorf("wrapped: %w", &jamdr.FileError{Path: "b.md", Err: jamdr.ErrPageLoad}),
	)

	got := fileErrors(joined)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if got["a.md"] != errA || !errors.Is(got["b.md"], jamdr.ErrPageLoad) {
		t.Errorf("fileErrors() = %v", got)
	}
	if len(fileErrors(nil)) != 0 {
		t.Error("nil error produced entries")
	}
	single := fileErrors(&jamdr.FileError{Path: "c.md", Err: errA})
	if single["c.md"] != errA {
		t.Errorf("single FileError not indexed: %v", single)
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []renderResult{
		{InputPath: "a.md", OutputPath: "a.pdf"},
		{InputPath: "b.md", OutputPath: "b.pdf", Err: jamdr.ErrBrowserConnect},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		notStdout  []string
	}{
		{"default", false, false, []string{"Created a.pdf", "1 succeeded, 1 failed"}, nil},
		{"verbose", false, true, []string{"a.md -> a.pdf"}, []string{"Created"}},
		{"quiet", true, false, nil, []string{"Created", "succeeded"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			if failed := printResults(results, tt.quiet, tt.verbose, env); failed != 1 {
				t.Errorf("failed = %d, want 1", failed)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q: %q", want, stdout)
				}
			}
			for _, not := range tt.notStdout {
				if strings.Contains(stdout.String(), not) {
					t.Errorf("stdout should not contain %q: %q", not, stdout)
				}
			}
			if !strings.Contains(stderr.String(), "FAILED b.md") || !strings.Contains(stderr.String(), "hint:") {
				t.Errorf("stderr = %q", stderr)
			}
		})
	}
}
