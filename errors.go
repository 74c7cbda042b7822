package jamdr

import "errors"

// Sentinel errors for library operations.
var (
	ErrInternal       = errors.New("internal error")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Selection errors.
	ErrUnknownBackend    = errors.New("unknown backend")
	ErrUnknownOutputType = errors.New("unknown output type")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Layout settings validation errors.
	ErrInvalidLayout = errors.New("invalid layout settings")
)

// FileError reports the failure of one document of a batch.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }
