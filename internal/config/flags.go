package config

import (
	"flag"
	"strings"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagKernel   = flag.String("kernel", "", "Brush kernel (draw, smooth, pinch, inflate, grab, layer, flatten)")
	flagSize     = flag.Int("size", 0, "Brush radius in pixels")
	flagStrength = flag.Float64("strength", -1, "Brush strength (0-100)")
	flagSymmetry = flag.String("symmetry", "", "Symmetry axes, any of xyz, or none")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagKernel != "" {
		cfg.Brush.Kernel = *flagKernel
	}
	if *flagSize > 0 {
		cfg.Brush.Size = *flagSize
	}
	if *flagStrength >= 0 {
		cfg.Brush.Strength = float32(*flagStrength)
	}
	if *flagSymmetry != "" {
		axes := strings.ToLower(*flagSymmetry)
		cfg.Symmetry = SymmetryConfig{
			X: strings.Contains(axes, "x"),
			Y: strings.Contains(axes, "y"),
			Z: strings.Contains(axes, "z"),
		}
	}
}
