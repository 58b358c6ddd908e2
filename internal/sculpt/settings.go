package sculpt

import (
	"fmt"
	"strings"

	"github.com/Faultbox/midgard-sculpt/internal/config"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// KernelKind names a brush kernel.
type KernelKind uint8

const (
	KindDraw KernelKind = iota
	KindSmooth
	KindPinch
	KindInflate
	KindGrab
	KindLayer
	KindFlatten
)

var kernelNames = [...]string{
	KindDraw:    "draw",
	KindSmooth:  "smooth",
	KindPinch:   "pinch",
	KindInflate: "inflate",
	KindGrab:    "grab",
	KindLayer:   "layer",
	KindFlatten: "flatten",
}

func (k KernelKind) String() string {
	if int(k) < len(kernelNames) {
		return kernelNames[k]
	}
	return fmt.Sprintf("kernel(%d)", k)
}

// UndoLabel is the label pushed to the undo stack when a stroke ends.
func (k KernelKind) UndoLabel() string {
	name := k.String()
	return strings.ToUpper(name[:1]) + name[1:] + " Brush"
}

func (k KernelKind) valid() bool {
	return int(k) < len(kernelNames)
}

// ParseKernelKind parses a kernel name such as "draw" or "Flatten".
func ParseKernelKind(s string) (KernelKind, error) {
	for i, name := range kernelNames {
		if strings.EqualFold(s, name) {
			return KernelKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKernel, s)
}

// RepeatMode selects how the brush texture is mapped.
type RepeatMode uint8

const (
	// RepeatDrag centers the texture under the cursor in screen space.
	RepeatDrag RepeatMode = iota
	// RepeatTile tiles the texture across the brush plane.
	RepeatTile
	// Repeat3D samples the texture at world positions scaled by the
	// texture size, projected onto the XY plane. Z does not change the
	// sample, so surfaces facing X or Y show the texture stretched.
	Repeat3D
)

func (r RepeatMode) String() string {
	switch r {
	case RepeatDrag:
		return "drag"
	case RepeatTile:
		return "tile"
	case Repeat3D:
		return "3d"
	default:
		return fmt.Sprintf("repeat(%d)", r)
	}
}

// ParseRepeatMode parses "drag", "tile" or "3d".
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch strings.ToLower(s) {
	case "drag", "":
		return RepeatDrag, nil
	case "tile":
		return RepeatTile, nil
	case "3d":
		return Repeat3D, nil
	default:
		return 0, fmt.Errorf("sculpt: unknown texture repeat mode %q", s)
	}
}

// Brush is the brush configuration for one stroke.
type Brush struct {
	Kind     KernelKind
	Size     int     // Radius in pixels
	Strength float32 // 0-100
	Invert   bool
	View     int // 0-10, blends the area normal toward the viewer
	Airbrush bool
	Fade     bool
}

func (b Brush) validate() error {
	if !b.Kind.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKernel, b.Kind)
	}
	if b.Size <= 0 {
		return fmt.Errorf("sculpt: brush size %d must be positive", b.Size)
	}
	if b.Strength < 0 || b.Strength > 100 {
		return fmt.Errorf("sculpt: brush strength %g outside 0..100", b.Strength)
	}
	if b.View < 0 || b.View > 10 {
		return fmt.Errorf("sculpt: brush view %d outside 0..10", b.View)
	}
	return nil
}

// TextureSettings controls brush texture mapping.
type TextureSettings struct {
	Repeat    RepeatMode
	Size      float32 // Tile size, or world scale in 3D mode
	Angle     float32 // Degrees
	CacheSize int     // Side of the baked 2D buffer in texels
}

// Mirror snaps coordinates near zero on the clipped axes to exactly zero.
type Mirror struct {
	Clip      math.Axis
	Tolerance float32
}

// Settings configures an Engine.
type Settings struct {
	Brush    Brush
	Texture  TextureSettings
	Symmetry math.Axis
	Mirror   Mirror

	// Averaging is the number of pointer samples averaged together.
	Averaging int
	// TabletSize and TabletStrength are the 0-10 pressure influences.
	TabletSize     int
	TabletStrength int

	// DrawFast hands damaged rectangles to the host instead of
	// requesting a full redraw.
	DrawFast bool

	MaxVertices int
}

// DefaultSettings returns the settings of the default configuration.
func DefaultSettings() Settings {
	s, err := SettingsFromConfig(config.Default())
	if err != nil {
		panic(err)
	}
	return s
}

// SettingsFromConfig converts and validates a loaded configuration.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	kind, err := ParseKernelKind(cfg.Brush.Kernel)
	if err != nil {
		return Settings{}, err
	}
	repeat, err := ParseRepeatMode(cfg.Texture.Repeat)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Brush: Brush{
			Kind:     kind,
			Size:     cfg.Brush.Size,
			Strength: cfg.Brush.Strength,
			Invert:   cfg.Brush.Invert,
			View:     cfg.Brush.View,
			Airbrush: cfg.Brush.Airbrush,
			Fade:     cfg.Brush.Fade,
		},
		Texture: TextureSettings{
			Repeat:    repeat,
			Size:      cfg.Texture.Size,
			Angle:     cfg.Texture.Angle,
			CacheSize: cfg.Texture.CacheSize,
		},
		Symmetry:       axes(cfg.Symmetry.X, cfg.Symmetry.Y, cfg.Symmetry.Z),
		Mirror:         Mirror{Clip: axes(cfg.Mirror.ClipX, cfg.Mirror.ClipY, cfg.Mirror.ClipZ), Tolerance: cfg.Mirror.Tolerance},
		Averaging:      cfg.Input.Averaging,
		TabletSize:     cfg.Input.TabletSize,
		TabletStrength: cfg.Input.TabletStrength,
		DrawFast:       cfg.Display.DrawFast,
		MaxVertices:    cfg.Limits.MaxVertices,
	}
	return s, nil
}

func axes(x, y, z bool) math.Axis {
	var a math.Axis
	if x {
		a |= math.AxisX
	}
	if y {
		a |= math.AxisY
	}
	if z {
		a |= math.AxisZ
	}
	return a
}
