package main

import (
	"errors"
	"os"

	"github.com/jamdr/jamdr"
	"github.com/jamdr/jamdr/internal/assets"
	"github.com/jamdr/jamdr/internal/config"
	"github.com/jamdr/jamdr/internal/fileutil"
	"github.com/jamdr/jamdr/internal/fonts"
	"github.com/jamdr/jamdr/internal/pipeline"
	"github.com/jamdr/jamdr/internal/watch"
)

// Exit codes for the jamdr CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General error, output conflict or failed documents
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitFont    = 5 // Missing or unreadable font files
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Per-document failures were already reported one by one.
	if errors.Is(err, ErrRenderFailed) || errors.Is(err, ErrOutputConflict) {
		return ExitGeneral
	}

	// Font errors (exit 5)
	if errors.Is(err, fonts.ErrFontNotFound) ||
		errors.Is(err, fonts.ErrFontParse) {
		return ExitFont
	}

	// Browser errors (exit 4)
	if errors.Is(err, jamdr.ErrBrowserConnect) ||
		errors.Is(err, jamdr.ErrPageCreate) ||
		errors.Is(err, jamdr.ErrPageLoad) ||
		errors.Is(err, jamdr.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrReadInput) ||
		errors.Is(err, fileutil.ErrWriteOutput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, watch.ErrWatch) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, jamdr.ErrUnknownBackend) ||
		errors.Is(err, jamdr.ErrUnknownOutputType) ||
		errors.Is(err, jamdr.ErrInvalidPageSize) ||
		errors.Is(err, jamdr.ErrInvalidOrientation) ||
		errors.Is(err, jamdr.ErrInvalidMargin) ||
		errors.Is(err, jamdr.ErrInvalidLayout) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, pipeline.ErrTemplateParse) {
		return ExitUsage
	}

	return ExitGeneral
}
