package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/jamdr/jamdr"
	"github.com/jamdr/jamdr/internal/assets"
	"github.com/jamdr/jamdr/internal/config"
	"github.com/jamdr/jamdr/internal/fileutil"
	"github.com/jamdr/jamdr/internal/fonts"
	"github.com/jamdr/jamdr/internal/pipeline"
	"github.com/jamdr/jamdr/internal/watch"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"render failed", fmt.Errorf("%w: 1 of 2 file(s)", ErrRenderFailed), ExitGeneral},
		{"output conflict", ErrOutputConflict, ExitGeneral},
		{"render failed wins over browser", errors.Join(ErrRenderFailed, jamdr.ErrBrowserConnect), ExitGeneral},
		{"font not found", fmt.Errorf("%w: regular.ttf", fonts.ErrFontNotFound), ExitFont},
		{"font parse", fonts.ErrFontParse, ExitFont},
		{"browser connect", fmt.Errorf("wrap: %w", jamdr.ErrBrowserConnect), ExitBrowser},
		{"page create", jamdr.ErrPageCreate, ExitBrowser},
		{"page load", jamdr.ErrPageLoad, ExitBrowser},
		{"pdf generation", jamdr.ErrPDFGeneration, ExitBrowser},
		{"not exist", fmt.Errorf("open: %w", os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"read input", fileutil.ErrReadInput, ExitIO},
		{"write output", fileutil.ErrWriteOutput, ExitIO},
		{"read css", ErrReadCSS, ExitIO},
		{"watch", watch.ErrWatch, ExitIO},
		{"usage", ErrUsage, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"unknown backend", jamdr.ErrUnknownBackend, ExitUsage},
		{"unknown type", jamdr.ErrUnknownOutputType, ExitUsage},
		{"page size", jamdr.ErrInvalidPageSize, ExitUsage},
		{"margin", jamdr.ErrInvalidMargin, ExitUsage},
		{"layout", jamdr.ErrInvalidLayout, ExitUsage},
		{"style not found", assets.ErrStyleNotFound, ExitUsage},
		{"path traversal", assets.ErrPathTraversal, ExitUsage},
		{"template parse", pipeline.ErrTemplateParse, ExitUsage},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
