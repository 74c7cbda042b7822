package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jamdr/jamdr"
	"github.com/jamdr/jamdr/internal/assets"
	"github.com/jamdr/jamdr/internal/fileutil"
	"github.com/jamdr/jamdr/internal/fonts"
	"github.com/jamdr/jamdr/internal/hints"
	"github.com/jamdr/jamdr/internal/layout"
)

// renderJob renders a set of files with one backend and writes the results.
// It is reused by every watch iteration.
type renderJob struct {
	backend   jamdr.Backend
	tmpl      string
	css       string
	ext       string
	output    string
	outputDir string
	stdout    bool
	quiet     bool
	verbose   bool
	env       *Environment
}

// renderResult holds the outcome of a single document.
type renderResult struct {
	InputPath  string
	OutputPath string
	Err        error
}

// run reads every path (failing the whole batch if one is unreadable),
// renders them and writes each result. Per-document failures are reported
// and summarized as ErrRenderFailed.
func (j *renderJob) run(ctx context.Context, paths []string) error {
	start := j.env.Now()

	sources, err := fileutil.ReadFiles(paths)
	if err != nil {
		return err
	}

	rendered, renderErr := j.backend.RenderFiles(ctx, sources, j.tmpl, j.css)
	failures := fileErrors(renderErr)
	if renderErr != nil && len(failures) == 0 {
		return renderErr
	}

	results := make([]renderResult, 0, len(paths))
	for _, p := range paths {
		r := renderResult{InputPath: p, OutputPath: j.outputPath(p)}
		if data, ok := rendered[p]; ok {
			r.Err = j.write(r.OutputPath, data)
		} else if err, ok := failures[p]; ok {
			r.Err = err
		} else {
			r.Err = fmt.Errorf("%w: no output produced", jamdr.ErrInternal)
		}
		results = append(results, r)
	}

	failed := printResults(results, j.quiet, j.verbose, j.env)
	if j.verbose {
		fmt.Fprintf(j.env.Stderr, "Rendered %d file(s) in %v\n", len(results), j.env.Now().Sub(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrRenderFailed, failed, len(results))
	}
	return nil
}

// outputPath determines where the result for input goes.
// Priority: --output > output directory > next to the input.
func (j *renderJob) outputPath(input string) string {
	if j.stdout {
		return "-"
	}
	if j.output != "" {
		return j.output
	}
	out := fileutil.ReplaceExt(input, j.ext)
	if j.outputDir != "" {
		return filepath.Join(j.outputDir, filepath.Base(out))
	}
	return out
}

func (j *renderJob) write(path string, data []byte) error {
	if j.stdout {
		if _, err := j.env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", fileutil.ErrWriteOutput, err)
		}
		return nil
	}
	return fileutil.WriteFile(path, data)
}

// fileErrors indexes the *jamdr.FileError values of a joined batch error.
func fileErrors(err error) map[string]error {
	out := make(map[string]error)
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else if err != nil {
		errs = []error{err}
	}
	for _, e := range errs {
		var fe *jamdr.FileError
		if errors.As(e, &fe) {
			out[fe.Path] = fe.Err
		}
	}
	return out
}

// printResults outputs render results and returns the failure count.
func printResults(results []renderResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s\n", r.InputPath, r.OutputPath)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, jamdr.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, jamdr.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, layout.ErrUnsupportedEvent):
		return hints.ForUnsupportedMarkdown()
	case errors.Is(err, fonts.ErrFontNotFound):
		return hints.ForFontNotFound(fonts.FileNames[:])
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{assets.DefaultStyleName, assets.DarkStyleName})
	case errors.Is(err, fileutil.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
