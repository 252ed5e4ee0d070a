// Package config handles renderer configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// Config holds all renderer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// RenderConfig selects the scene and how it is rendered. Zero width, height
// and recurse depth keep the scene's own values.
type RenderConfig struct {
	Scene        string `yaml:"scene"`         // Built-in scene ID or path to a scene file
	ScenesDir    string `yaml:"scenes_dir"`    // Directory scanned for scene files
	Width        int    `yaml:"width"`         // Image width override
	Height       int    `yaml:"height"`        // Image height override
	RecurseDepth int    `yaml:"recurse_depth"` // Reflection depth override
	Strategy     string `yaml:"strategy"`      // sequential, pool or rows
	Workers      int    `yaml:"workers"`       // 0 means one per CPU
}

// OutputConfig controls where rendered images are written.
type OutputConfig struct {
	Path   string `yaml:"path"`   // Output file
	Format string `yaml:"format"` // png, bmp or tiff; empty picks from the path extension
	Unique bool   `yaml:"unique"` // Pick a free name instead of overwriting
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`
	StaticDir string `yaml:"static_dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Scene:     "default",
			ScenesDir: "scenes",
			Strategy:  string(renderer.StrategyRows),
		},
		Output: OutputConfig{
			Path:   "raytraced.png",
			Unique: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Port:      8080,
			MaxWidth:  2000,
			MaxHeight: 2000,
			StaticDir: "web/static",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs error

	if c.Render.Width < 0 || c.Render.Height < 0 {
		errs = multierr.Append(errs, fmt.Errorf("render size must not be negative, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.RecurseDepth < 0 {
		errs = multierr.Append(errs, fmt.Errorf("recurse_depth must not be negative, got %d", c.Render.RecurseDepth))
	}
	if c.Render.Workers < 0 {
		errs = multierr.Append(errs, fmt.Errorf("workers must not be negative, got %d", c.Render.Workers))
	}
	if _, err := renderer.ParseStrategy(c.Render.Strategy); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.Output.Format != "" {
		if _, err := loaders.ParseImageFormat(c.Output.Format); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("server port must be in 1..65535, got %d", c.Server.Port))
	}
	if c.Server.MaxWidth <= 0 || c.Server.MaxHeight <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("server size limits must be positive, got %dx%d", c.Server.MaxWidth, c.Server.MaxHeight))
	}

	return errs
}

// RenderOptions converts the render settings into renderer options.
func (c *Config) RenderOptions() (renderer.RenderOptions, error) {
	strategy, err := renderer.ParseStrategy(c.Render.Strategy)
	if err != nil {
		return renderer.RenderOptions{}, err
	}
	return renderer.RenderOptions{Strategy: strategy, Workers: c.Render.Workers}, nil
}

// OutputFormat returns the configured image format, falling back to the output path extension.
func (c *Config) OutputFormat() (loaders.ImageFormat, error) {
	if c.Output.Format == "" {
		return loaders.FormatFromPath(c.Output.Path), nil
	}
	return loaders.ParseImageFormat(c.Output.Format)
}
