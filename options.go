package jamdr

import "time"

// defaultTimeout bounds one browser page load.
const defaultTimeout = 30 * time.Second

// creator is written into PDF metadata.
const creator = "jamdr"

// settings holds the configuration shared by every backend.
type settings struct {
	workers int
	timeout time.Duration
	fontDir string
	page    PageSettings
	layout  LayoutSettings
	now     func() time.Time
}

func defaultSettings() settings {
	return settings{
		timeout: defaultTimeout,
		page:    DefaultPageSettings(),
		now:     time.Now,
	}
}

// Option configures a backend.
type Option func(*settings)

// WithWorkers sets the number of documents rendered in parallel.
// Zero or less sizes the pool from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *settings) {
		s.workers = n
	}
}

// WithTimeout sets the browser page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("jamdr: WithTimeout duration must be positive")
	}
	return func(s *settings) {
		s.timeout = d
	}
}

// WithFontDir loads the four font variants from dir instead of the
// embedded Go fonts. Empty keeps the embedded fonts.
func WithFontDir(dir string) Option {
	return func(s *settings) {
		s.fontDir = dir
	}
}

// WithPage sets the paper size, orientation and margin.
func WithPage(p PageSettings) Option {
	return func(s *settings) {
		s.page = p
	}
}

// WithLayout tunes the inhouse layout engine.
func WithLayout(l LayoutSettings) Option {
	return func(s *settings) {
		s.layout = l
	}
}

// WithNow sets the clock used for document metadata.
func WithNow(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func applyOptions(opts []Option) (settings, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.page.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}
