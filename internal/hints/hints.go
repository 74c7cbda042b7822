// Package hints builds actionable suffixes for error messages, formatted as
// "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/jamdr/jamdr/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the go-rod environment variables that usually
// fix a failed Chrome launch.
func ForBrowserConnect() string {
	var hints []string
	inCI := os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" || os.Getenv("GITLAB_CI") != ""
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a custom Chrome")
	}
	hints = append(hints, "or render with --backend inhouse, which needs no browser")
	return format(strings.Join(hints, "; "))
}

// ForTimeout suggests a longer browser timeout.
func ForTimeout() string {
	return format("for large documents, raise --timeout")
}

// ForConfigNotFound suggests --config or the user config location among
// the searched paths.
func ForConfigNotFound(searched []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(p, "jamdr") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForStyleNotFound lists the bundled styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForFontNotFound names the files a font directory must hold.
func ForFontNotFound(files []string) string {
	return format("a font directory needs " + strings.Join(files, ", "))
}

// ForUnsupportedMarkdown points at the browser backend, which renders every
// markdown construct.
func ForUnsupportedMarkdown() string {
	return format("the inhouse backend cannot draw this construct; use --backend chromium or --type html")
}

// ForOutputDirectory suggests checking the output location.
func ForOutputDirectory() string {
	return format("check the parent directory exists and is writable")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
