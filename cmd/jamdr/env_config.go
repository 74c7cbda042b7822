package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jamdr/jamdr/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "JAMDR_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // JAMDR_CONFIG: config file name or path
	Backend    string        // JAMDR_BACKEND: inhouse, chromium
	Type       string        // JAMDR_TYPE: pdf, html
	Style      string        // JAMDR_STYLE: bundled style name
	Timeout    time.Duration // JAMDR_TIMEOUT: browser timeout
	Workers    int           // JAMDR_WORKERS: parallel workers
	OutputDir  string        // JAMDR_OUTPUT_DIR: output directory
	PageSize   string        // JAMDR_PAGE_SIZE: letter, a4, legal
	FontDir    string        // JAMDR_FONT_DIR: font directory
}

// knownEnvVars lists valid JAMDR_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"JAMDR_CONFIG":     true,
	"JAMDR_BACKEND":    true,
	"JAMDR_TYPE":       true,
	"JAMDR_STYLE":      true,
	"JAMDR_TIMEOUT":    true,
	"JAMDR_WORKERS":    true,
	"JAMDR_OUTPUT_DIR": true,
	"JAMDR_PAGE_SIZE":  true,
	"JAMDR_FONT_DIR":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("JAMDR_CONFIG"),
		Backend:    getenv("JAMDR_BACKEND"),
		Type:       getenv("JAMDR_TYPE"),
		Style:      getenv("JAMDR_STYLE"),
		OutputDir:  getenv("JAMDR_OUTPUT_DIR"),
		PageSize:   getenv("JAMDR_PAGE_SIZE"),
		FontDir:    getenv("JAMDR_FONT_DIR"),
	}

	if timeout := getenv("JAMDR_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("JAMDR_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized JAMDR_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config fields that are still empty.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Backend != "" && cfg.Backend == "" {
		cfg.Backend = env.Backend
	}
	if env.Type != "" && cfg.Type == "" {
		cfg.Type = env.Type
	}
	if env.Style != "" && cfg.Style.Name == "" {
		cfg.Style.Name = env.Style
	}
	if env.Timeout > 0 && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.FontDir != "" && cfg.Fonts.Dir == "" {
		cfg.Fonts.Dir = env.FontDir
	}
}
