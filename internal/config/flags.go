package config

import "flag"

// Flags holds the command-line overrides registered on a FlagSet.
type Flags struct {
	fs *flag.FlagSet

	config       *string
	scene        *string
	scenesDir    *string
	out          *string
	format       *string
	width        *int
	height       *int
	recurseDepth *int
	parallel     *bool
	strategy     *string
	threads      *int
	debug        *bool
	logFile      *string
	port         *int
}

// NewFlags registers the renderer flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:           fs,
		config:       fs.String("config", "", "Path to config file"),
		scene:        fs.String("scene", "", "Built-in scene name or path to a .scene/.yaml file"),
		scenesDir:    fs.String("scenes-dir", "", "Directory containing scene files"),
		out:          fs.String("out", "", "Output image path"),
		format:       fs.String("format", "", "Output format: png, bmp or tiff (default from -out extension)"),
		width:        fs.Int("width", 0, "Image width (0 keeps the scene's width)"),
		height:       fs.Int("height", 0, "Image height (0 keeps the scene's height)"),
		recurseDepth: fs.Int("recurse-depth", 0, "Maximum reflection depth (0 keeps the scene's depth)"),
		parallel:     fs.Bool("parallel", true, "Render in parallel; false forces the sequential strategy"),
		strategy:     fs.String("strategy", "", "Parallel strategy: pool or rows"),
		threads:      fs.Int("threads", 0, "Worker count (0 means one per CPU)"),
		debug:        fs.Bool("debug", false, "Enable debug logging"),
		logFile:      fs.String("log-file", "", "Also log to this file, rotated"),
		port:         fs.Int("port", 0, "Web server port"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// applyFlags applies explicitly set flags on top of cfg.
func (f *Flags) applyFlags(cfg *Config) {
	if f == nil {
		return
	}

	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
	if *f.scene != "" {
		cfg.Render.Scene = *f.scene
	}
	if *f.scenesDir != "" {
		cfg.Render.ScenesDir = *f.scenesDir
	}
	if *f.out != "" {
		cfg.Output.Path = *f.out
	}
	if *f.format != "" {
		cfg.Output.Format = *f.format
	}
	if set["width"] {
		cfg.Render.Width = *f.width
	}
	if set["height"] {
		cfg.Render.Height = *f.height
	}
	if set["recurse-depth"] {
		cfg.Render.RecurseDepth = *f.recurseDepth
	}
	if *f.strategy != "" {
		cfg.Render.Strategy = *f.strategy
	}
	if set["parallel"] && !*f.parallel {
		cfg.Render.Strategy = "sequential"
	}
	if set["threads"] {
		cfg.Render.Workers = *f.threads
	}
	if *f.port > 0 {
		cfg.Server.Port = *f.port
	}
}
