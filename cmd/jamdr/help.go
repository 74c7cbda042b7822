package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: jamdr [render] [flags] <file>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to PDF or HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render files (default)")
	fmt.Fprintln(w, "  doctor     Check fonts and browser setup (--json, --font-dir)")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -t, --type <s>            Output type: pdf, html (default pdf)")
	fmt.Fprintln(w, "  -b, --backend <s>         PDF backend: inhouse, chromium (default inhouse)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (single input only)")
	fmt.Fprintln(w, "      --stdout              Write the result to standard output (single input only)")
	fmt.Fprintln(w, "  -w, --watch               Re-render when an input changes")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --timeout <d>         Browser timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inhouse layout:")
	fmt.Fprintln(w, "      --heading-rule <s>    Heading underline: full, text, none")
	fmt.Fprintln(w, "      --paginate            Start a new page at the bottom margin")
	fmt.Fprintln(w, "      --font-dir <dir>      regular.ttf, bold.ttf, italic.ttf, bold-italic.ttf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling (html, chromium):")
	fmt.Fprintln(w, "      --css <path>          Stylesheet file")
	fmt.Fprintln(w, "      --style <name>        Bundled style: light, dark")
	fmt.Fprintln(w, "      --template <name>     Template name")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding bundled assets")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: JAMDR_CONFIG, JAMDR_BACKEND, JAMDR_TYPE, JAMDR_STYLE, JAMDR_TIMEOUT,")
	fmt.Fprintln(w, "JAMDR_WORKERS, JAMDR_OUTPUT_DIR, JAMDR_PAGE_SIZE, JAMDR_FONT_DIR")
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "jamdr %s\n", Version)
}
