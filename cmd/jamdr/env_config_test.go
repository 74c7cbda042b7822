package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jamdr/jamdr/internal/config"
)

func getenvFrom(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want envConfig
	}{
		{
			name: "empty environment",
			vars: nil,
			want: envConfig{},
		},
		{
			name: "all string variables",
			vars: map[string]string{
				"JAMDR_CONFIG":     "work",
				"JAMDR_BACKEND":    "chromium",
				"JAMDR_TYPE":       "html",
				"JAMDR_STYLE":      "dark",
				"JAMDR_OUTPUT_DIR": "out",
				"JAMDR_PAGE_SIZE":  "a4",
				"JAMDR_FONT_DIR":   "/fonts",
			},
			want: envConfig{
				ConfigPath: "work",
				Backend:    "chromium",
				Type:       "html",
				Style:      "dark",
				OutputDir:  "out",
				PageSize:   "a4",
				FontDir:    "/fonts",
			},
		},
		{
			name: "valid numbers",
			vars: map[string]string{"JAMDR_TIMEOUT": "45s", "JAMDR_WORKERS": "3"},
			want: envConfig{Timeout: 45 * time.Second, Workers: 3},
		},
		{
			name: "malformed numbers are ignored",
			vars: map[string]string{"JAMDR_TIMEOUT": "soon", "JAMDR_WORKERS": "-2"},
			want: envConfig{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := loadEnvConfig(getenvFrom(tt.vars))
			if *got != tt.want {
				t.Errorf("loadEnvConfig() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		applyEnvConfig(&envConfig{
			Backend:   "chromium",
			Type:      "html",
			Style:     "dark",
			Timeout:   time.Minute,
			Workers:   2,
			OutputDir: "out",
			PageSize:  "legal",
			FontDir:   "/fonts",
		}, cfg)

		if cfg.Backend != "chromium" || cfg.Type != "html" || cfg.Style.Name != "dark" {
			t.Errorf("strings not applied: %+v", cfg)
		}
		if cfg.Timeout != "1m0s" || cfg.Workers != 2 {
			t.Errorf("timeout/workers not applied: %q %d", cfg.Timeout, cfg.Workers)
		}
		if cfg.Output.Dir != "out" || cfg.Page.Size != "legal" || cfg.Fonts.Dir != "/fonts" {
			t.Errorf("nested fields not applied: %+v", cfg)
		}
	})

	t.Run("config file values win", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Backend: "inhouse", Workers: 4}
		cfg.Page.Size = "a4"
		applyEnvConfig(&envConfig{Backend: "chromium", Workers: 1, PageSize: "legal"}, cfg)

		if cfg.Backend != "inhouse" || cfg.Workers != 4 || cfg.Page.Size != "a4" {
			t.Errorf("config values overwritten: %+v", cfg)
		}
	})
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"HOME=/root",
		"JAMDR_BACKEND=inhouse",
		"JAMDR_BAKCEND=chromium",
		"JAMDR_EMPTY=",
	})

	out := buf.String()
	if strings.Contains(out, "JAMDR_BACKEND ") || strings.Contains(out, "HOME") {
		t.Errorf("warned about a known or foreign variable: %q", out)
	}
	for _, want := range []string{"JAMDR_BAKCEND", "JAMDR_EMPTY"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing warning for %s in %q", want, out)
		}
	}
}
