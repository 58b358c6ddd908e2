// Package config handles sculpt tool configuration loading and management.
package config

// Config holds all sculpt tool settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Brush    BrushConfig    `yaml:"brush"`
	Texture  TextureConfig  `yaml:"texture"`
	Symmetry SymmetryConfig `yaml:"symmetry"`
	Mirror   MirrorConfig   `yaml:"mirror"`
	Input    InputConfig    `yaml:"input"`
	Display  DisplayConfig  `yaml:"display"`
	Limits   LimitsConfig   `yaml:"limits"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig holds the window and projection settings.
type ViewportConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FOVDegrees   float32 `yaml:"fov_degrees"`
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	Orthographic bool    `yaml:"orthographic"`
	OrthoScale   float32 `yaml:"ortho_scale"`
}

// BrushConfig holds the active brush.
type BrushConfig struct {
	Kernel   string  `yaml:"kernel"`   // draw, smooth, pinch, inflate, grab, layer, flatten
	Size     int     `yaml:"size"`     // Radius in pixels
	Strength float32 `yaml:"strength"` // 0-100
	Invert   bool    `yaml:"invert"`   // Subtract instead of add
	View     int     `yaml:"view"`     // 0-10 blend of the area normal toward the view
	Airbrush bool    `yaml:"airbrush"` // Apply even when the pointer does not move
	Fade     bool    `yaml:"fade"`     // Cosine falloff toward the rim
}

// TextureConfig holds the brush texture settings.
type TextureConfig struct {
	Path      string  `yaml:"path"`
	Repeat    string  `yaml:"repeat"` // drag, tile, 3d
	Size      float32 `yaml:"size"`
	Angle     float32 `yaml:"angle"` // Degrees
	CacheSize int     `yaml:"cache_size"`
}

// SymmetryConfig selects the mirrored stroke axes.
type SymmetryConfig struct {
	X bool `yaml:"x"`
	Y bool `yaml:"y"`
	Z bool `yaml:"z"`
}

// MirrorConfig holds mirror seam clipping.
type MirrorConfig struct {
	ClipX     bool    `yaml:"clip_x"`
	ClipY     bool    `yaml:"clip_y"`
	ClipZ     bool    `yaml:"clip_z"`
	Tolerance float32 `yaml:"tolerance"`
}

// InputConfig holds pointer filtering and tablet settings.
type InputConfig struct {
	Averaging      int `yaml:"averaging"`       // 1-10 samples
	TabletSize     int `yaml:"tablet_size"`     // 0-10 pressure influence on size
	TabletStrength int `yaml:"tablet_strength"` // 0-10 pressure influence on strength
}

// DisplayConfig holds redraw settings.
type DisplayConfig struct {
	DrawFast bool `yaml:"draw_fast"` // Redraw only damaged rectangles
}

// LimitsConfig bounds per-session allocations.
type LimitsConfig struct {
	MaxVertices int `yaml:"max_vertices"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:      1280,
			Height:     720,
			FOVDegrees: 45,
			Near:       0.1,
			Far:        100,
			OrthoScale: 5,
		},
		Brush: BrushConfig{
			Kernel:   "draw",
			Size:     50,
			Strength: 25,
			Fade:     true,
		},
		Texture: TextureConfig{
			Repeat:    "drag",
			Size:      1,
			CacheSize: 128,
		},
		Mirror: MirrorConfig{
			Tolerance: 0.001,
		},
		Input: InputConfig{
			Averaging:      1,
			TabletSize:     3,
			TabletStrength: 10,
		},
		Display: DisplayConfig{
			DrawFast: true,
		},
		Limits: LimitsConfig{
			MaxVertices: 4 << 20,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
