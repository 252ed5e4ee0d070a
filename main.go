package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/df07/go-recursive-raytracer/internal/config"
	"github.com/df07/go-recursive-raytracer/internal/logger"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.NewFlags(fs)
	help := fs.Bool("help", false, "Show help information")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		printHelp(stdout, fs)
		return 0
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	selectedScene, err := createScene(cfg)
	if err != nil {
		if len(loaders.ParseErrors(err)) > 0 {
			fmt.Fprint(stderr, loaders.FormatError(err))
		}
		logger.Error("Failed to load scene", zap.String("scene", cfg.Render.Scene), zap.Error(err))
		return 1
	}

	path, stats, err := renderScene(ctx, cfg, selectedScene)
	if err != nil {
		logger.Error("Render failed", zap.String("scene", selectedScene.Name), zap.Error(err))
		return 1
	}

	logger.Info("Render saved",
		zap.String("path", path),
		zap.Int("pixels", stats.TotalPixels),
		zap.Float64("coverage", stats.Coverage()),
		zap.Duration("elapsed", stats.Elapsed),
	)
	fmt.Fprintf(stdout, "Render saved as %s\n", path)
	return 0
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Recursive Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-10s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  <file>     Path to a .scene or .yaml scene file")
}

// createScene resolves the configured scene by built-in name, file ID or path
func createScene(cfg *config.Config) (*scene.Scene, error) {
	if cfg.Render.Scene == "" {
		return nil, errors.New("no scene selected")
	}
	return scene.Load(cfg.Render.Scene, cfg.Render.ScenesDir)
}

// renderScene renders s with the config's overrides and writes the image, returning its path
func renderScene(ctx context.Context, cfg *config.Config, s *scene.Scene) (string, renderer.RenderStats, error) {
	rt, err := s.Build()
	if err != nil {
		return "", renderer.RenderStats{}, err
	}
	rt.SetLogger(logger.Named("renderer"))

	if cfg.Render.Width > 0 {
		rt.SetWidth(cfg.Render.Width)
	}
	if cfg.Render.Height > 0 {
		rt.SetHeight(cfg.Render.Height)
	}
	if cfg.Render.RecurseDepth > 0 {
		rt.SetRecurseDepth(cfg.Render.RecurseDepth)
	}

	opts, err := cfg.RenderOptions()
	if err != nil {
		return "", renderer.RenderStats{}, err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return "", renderer.RenderStats{}, err
	}

	width, height := rt.Camera().Pixels()
	logger.Info("Rendering scene",
		zap.String("scene", s.Name),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("primitives", s.GetPrimitiveCount()),
		zap.Int("depth", rt.RecurseDepth()),
	)

	img, stats, err := rt.RenderWithStats(ctx, opts)
	if err != nil {
		return "", stats, fmt.Errorf("render interrupted: %w", err)
	}

	path, err := outputPath(cfg)
	if err != nil {
		return "", stats, err
	}
	if err := loaders.SaveImage(path, img, format); err != nil {
		return "", stats, err
	}
	return path, stats, nil
}

// outputPath creates the output directory and avoids overwriting when configured to
func outputPath(cfg *config.Config) (string, error) {
	path := cfg.Output.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if !cfg.Output.Unique {
		return path, nil
	}
	return loaders.UniquePath(path)
}
