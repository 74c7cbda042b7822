package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds output control flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// layoutFlags holds inhouse layout engine flags.
type layoutFlags struct {
	headingRule string
	paginate    bool
}

// assetFlags holds stylesheet and template flags.
type assetFlags struct {
	css       string
	style     string
	template  string
	assetPath string
}

// renderFlags holds every flag of the render command.
type renderFlags struct {
	common  commonFlags
	watch   bool
	stdout  bool
	typ     string
	output  string
	backend string
	workers int
	timeout string
	fontDir string
	page    pageFlags
	layout  layoutFlags
	assets  assetFlags
	help    bool
	version bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVar(&f.headingRule, "heading-rule", "", "heading underline: full, text, none")
	fs.BoolVar(&f.paginate, "paginate", false, "start a new page when text reaches the bottom margin")
}

func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.css, "css", "", "stylesheet file")
	fs.StringVar(&f.style, "style", "", "bundled style name: light, dark")
	fs.StringVar(&f.template, "template", "", "template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding bundled styles and templates")
}

// parseRenderFlags parses render flags and returns the input files.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &renderFlags{}

	fs.BoolVarP(&f.watch, "watch", "w", false, "re-render when an input changes")
	fs.BoolVar(&f.stdout, "stdout", false, "write the result to standard output")
	fs.StringVarP(&f.typ, "type", "t", "", "output type: pdf, html")
	fs.StringVarP(&f.output, "output", "o", "", "output file (single input only)")
	fs.StringVarP(&f.backend, "backend", "b", "", "PDF backend: inhouse, chromium")
	fs.IntVar(&f.workers, "workers", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "browser timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.fontDir, "font-dir", "", "directory with regular.ttf, bold.ttf, italic.ttf, bold-italic.ttf")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addLayoutFlags(fs, &f.layout)
	addAssetFlags(fs, &f.assets)

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}
