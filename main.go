package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/df07/go-batch-raytracer/pkg/config"
	"github.com/df07/go-batch-raytracer/pkg/loaders"
	"github.com/df07/go-batch-raytracer/pkg/renderer"
	"github.com/df07/go-batch-raytracer/pkg/scene"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command line
type options struct {
	scenePath   string
	builtin     string
	output      string
	format      string
	configPath  string
	maxDistance float64
	verbose     bool
	debug       bool
	quiet       bool
	width       int
	height      int
	set         map[string]bool // Flags given explicitly
}

// levelFromFlags picks the log level from the verbosity flags
func levelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.scenePath, "scene", "", "Scene description file (default: read stdin)")
	fs.StringVar(&opts.builtin, "builtin", "", fmt.Sprintf("Render a built-in scene instead of a file: %v", scene.ListBuiltins()))
	fs.StringVar(&opts.output, "o", "-", "Output image file, - for stdout")
	fs.StringVar(&opts.format, "format", string(renderer.FormatPPM), fmt.Sprintf("Output format: %v", renderer.Formats))
	fs.StringVar(&opts.configPath, "config", "", "Configuration file (TOML, or YAML by .yaml/.yml extension)")
	fs.Float64Var(&opts.maxDistance, "max-distance", renderer.DefaultTraceConfig().MaxDistance, "Distance budget for reflection chains")
	fs.BoolVar(&opts.verbose, "v", false, "Log progress and statistics")
	fs.BoolVar(&opts.debug, "vv", false, "Log debug output, including the scene dump")
	fs.BoolVar(&opts.quiet, "q", false, "Log errors only")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: raytracer [options] <width> <height>")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if fs.NArg() != 2 {
		fs.Usage()
		return nil, fmt.Errorf("expected <width> <height>, got %d arguments", fs.NArg())
	}

	var err error
	if opts.width, err = strconv.Atoi(fs.Arg(0)); err != nil {
		return nil, fmt.Errorf("invalid width %q: %w", fs.Arg(0), err)
	}
	if opts.height, err = strconv.Atoi(fs.Arg(1)); err != nil {
		return nil, fmt.Errorf("invalid height %q: %w", fs.Arg(1), err)
	}
	if opts.scenePath != "" && opts.builtin != "" {
		return nil, errors.New("-scene and -builtin are mutually exclusive")
	}
	if opts.scenePath, err = homedir.Expand(opts.scenePath); err != nil {
		return nil, fmt.Errorf("-scene: %w", err)
	}
	if opts.configPath, err = homedir.Expand(opts.configPath); err != nil {
		return nil, fmt.Errorf("-config: %w", err)
	}
	return opts, nil
}

// loadConfig reads the config file, if any, and applies explicit flags on top
func loadConfig(opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	if opts.set["max-distance"] {
		cfg.Render.MaxDistance = opts.maxDistance
	}
	if opts.set["format"] {
		cfg.Render.Format = opts.format
	}
	if opts.set["o"] {
		cfg.Render.Output = opts.output
	}
	if opts.verbose || opts.debug || opts.quiet {
		cfg.Log.Level = levelFromFlags(opts.debug, opts.verbose, opts.quiet).String()
	}
	if cfg.Render.Output != "-" {
		output, err := homedir.Expand(cfg.Render.Output)
		if err != nil {
			return cfg, fmt.Errorf("output: %w", err)
		}
		cfg.Render.Output = output
	}
	return cfg, cfg.Validate()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "raytracer: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "raytracer: %v\n", err)
		return 1
	}
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := render(opts, cfg, stdin, stdout, logger); err != nil {
		logger.Error("Render failed", "err", err)
		return 1
	}
	return 0
}

func render(opts *options, cfg config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	format, err := renderer.ParseFormat(cfg.Render.Format)
	if err != nil {
		return err
	}

	var s *scene.Scene
	switch {
	case opts.builtin != "":
		s, err = scene.NewBuiltin(opts.builtin, opts.width, opts.height)
	case opts.scenePath != "":
		s, err = loaders.LoadScene(opts.scenePath, opts.width, opts.height, logger)
	default:
		s, err = loaders.ParseScene(stdin, opts.width, opts.height, loaders.SceneOptions{Logger: logger})
	}
	if err != nil {
		return err
	}
	s.Dump(logger)

	raytracer := renderer.NewRaytracer(s, logger)
	raytracer.SetTraceConfig(cfg.TraceConfig())

	startTime := time.Now()
	img, err := raytracer.Render()
	if err != nil {
		return err
	}
	logger.Info("Render completed", "elapsed", time.Since(startTime))

	// Nothing is written unless encoding succeeds
	var buf bytes.Buffer
	if err := renderer.Encode(&buf, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}

	if cfg.Render.Output == "-" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(cfg.Render.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	logger.Info("Render saved", "file", cfg.Render.Output, "format", format)
	return nil
}
