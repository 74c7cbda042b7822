package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/jamdr/jamdr"
	"github.com/jamdr/jamdr/internal/assets"
	"github.com/jamdr/jamdr/internal/config"
	"github.com/jamdr/jamdr/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input files")
	ErrOutputConflict = errors.New("--output and --stdout accept a single input file")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrRenderFailed   = errors.New("rendering failed")
)

// runMain runs the CLI with args (program name first) and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	rest := args[1:]
	if len(rest) > 0 {
		switch rest[0] {
		case "render":
			rest = rest[1:]
		case "version":
			printVersion(env.Stdout)
			return ExitSuccess
		case "doctor":
			return runDoctorCmd(rest[1:], env)
		case "help":
			printUsage(env.Stdout)
			return ExitSuccess
		}
	}

	flags, files, err := parseRenderFlags(rest)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		printVersion(env.Stdout)
		return ExitSuccess
	}

	setMaxProcs(flags.common.verbose, env.Stderr)

	if err := runRender(ctx, files, flags, env); err != nil {
		if errors.Is(err, ErrNoInput) {
			fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
			printUsage(env.Stderr)
			return ExitUsage
		}
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs configures GOMAXPROCS with conditional logging.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// runRender validates the arguments, builds the backend and renders files,
// then keeps re-rendering in watch mode.
func runRender(ctx context.Context, files []string, flags *renderFlags, env *Environment) error {
	if len(files) == 0 {
		return ErrNoInput
	}
	if len(files) > 1 && (flags.output != "" || flags.stdout) {
		return ErrOutputConflict
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	backendType, err := jamdr.ParseBackend(cfg.Backend)
	if err != nil {
		return err
	}
	outputType, err := jamdr.ParseOutputType(cfg.Type)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cfg, env)
	if err != nil {
		return err
	}

	backend, err := jamdr.NewBackend(backendType, outputType, opts...)
	if err != nil {
		return err
	}
	defer backend.Close()

	tmpl, css, err := resolveAssets(cfg, backendType, outputType)
	if err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Backend: %s, type: %s, workers: %d\n", backendType, outputType, jamdr.ResolvePoolSize(cfg.Workers))
		if ib, ok := backend.(*jamdr.InhouseBackend); ok && outputType == jamdr.OutputPDF {
			fmt.Fprintf(env.Stderr, "Fonts: %s\n", ib.FontSource())
		}
	}

	job := &renderJob{
		backend:   backend,
		tmpl:      tmpl,
		css:       css,
		ext:       outputType.Ext(),
		output:    flags.output,
		outputDir: cfg.Output.Dir,
		stdout:    flags.stdout,
		quiet:     flags.common.quiet || flags.stdout,
		verbose:   flags.common.verbose,
		env:       env,
	}

	files = uniquePaths(files)
	err = job.run(ctx, files)
	if !flags.watch {
		return err
	}
	if err != nil && !errors.Is(err, ErrRenderFailed) {
		return err
	}
	return watchAndRender(ctx, job, files)
}

// loadConfig loads the named config, falling back to JAMDR_CONFIG. No name
// means an empty config.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.typ != "" {
		cfg.Type = flags.typ
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.fontDir != "" {
		cfg.Fonts.Dir = flags.fontDir
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Layout flags
	if flags.layout.headingRule != "" {
		cfg.Layout.HeadingRule = flags.layout.headingRule
	}
	if flags.layout.paginate {
		cfg.Layout.Paginate = true
	}

	// Asset flags
	if flags.assets.css != "" {
		cfg.Style.CSS = flags.assets.css
	}
	if flags.assets.style != "" {
		cfg.Style.Name = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Style.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// buildOptions maps a validated config to backend options.
func buildOptions(cfg *config.Config, env *Environment) ([]jamdr.Option, error) {
	opts := []jamdr.Option{
		jamdr.WithWorkers(cfg.Workers),
		jamdr.WithFontDir(cfg.Fonts.Dir),
		jamdr.WithNow(env.Now),
		jamdr.WithPage(jamdr.PageSettings{
			Size:        cfg.Page.Size,
			Orientation: cfg.Page.Orientation,
			Margin:      cfg.Page.Margin,
		}),
		jamdr.WithLayout(jamdr.LayoutSettings{
			BodySize:        cfg.Layout.BodySize,
			HeaderBase:      cfg.Layout.HeaderBase,
			HeaderIncrement: cfg.Layout.HeaderIncrement,
			LineHeight:      cfg.Layout.LineHeight,
			HeadingRule:     cfg.Layout.HeadingRule,
			ListIndent:      cfg.Layout.ListIndent,
			Paginate:        cfg.Layout.Paginate,
		}),
	}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: timeout %q", ErrUsage, cfg.Timeout)
		}
		opts = append(opts, jamdr.WithTimeout(d))
	}
	return opts, nil
}

// resolveAssets loads the template and stylesheet for HTML-based output.
// Priority for the stylesheet: CSS file > style name > default style.
// The inhouse PDF backend needs neither.
func resolveAssets(cfg *config.Config, backend jamdr.BackendType, typ jamdr.OutputType) (tmpl, css string, err error) {
	if typ == jamdr.OutputPDF && backend == jamdr.BackendInhouse {
		return "", "", nil
	}

	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return "", "", err
	}

	templateName := cfg.Style.Template
	if templateName == "" {
		templateName = assets.DefaultTemplateName
	}
	if tmpl, err = loader.LoadTemplate(templateName); err != nil {
		return "", "", err
	}

	if cfg.Style.CSS != "" {
		content, err := os.ReadFile(cfg.Style.CSS) // #nosec G304 -- user-provided path
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return tmpl, string(content), nil
	}

	styleName := cfg.Style.Name
	if styleName == "" {
		styleName = assets.DefaultStyleName
	}
	if css, err = loader.LoadStyle(styleName); err != nil {
		return "", "", err
	}
	return tmpl, css, nil
}

// uniquePaths drops repeated paths, keeping the first occurrence.
func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0:0]
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
