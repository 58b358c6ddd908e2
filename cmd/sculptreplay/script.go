package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/internal/sculpt"
)

// Script is a replayable sculpt session.
type Script struct {
	Mesh   MeshSpec   `yaml:"mesh"`
	Camera CameraSpec `yaml:"camera"`
	Steps  []Step     `yaml:"steps"`
}

// MeshSpec selects the primitive to sculpt on.
type MeshSpec struct {
	Primitive string  `yaml:"primitive"` // grid, torus
	Segments  [2]int  `yaml:"segments"`  // Grid columns and rows, or torus ring and tube segments
	Spacing   float32 `yaml:"spacing"`   // Grid only
	Major     float32 `yaml:"major"`     // Torus only
	Minor     float32 `yaml:"minor"`     // Torus only
	KeyShape  string  `yaml:"key_shape"` // Adds a locked key shape with this name
}

// CameraSpec places the orbit camera before the first step.
type CameraSpec struct {
	Fit   bool    `yaml:"fit"` // Frame the mesh bounds
	Yaw   float32 `yaml:"yaw"`
	Pitch float32 `yaml:"pitch"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Stroke *StrokeStep `yaml:"stroke"`
	Hide   *HideStep   `yaml:"hide"`
	Reveal bool        `yaml:"reveal"`
	Orbit  *OrbitStep  `yaml:"orbit"`
}

// StrokeStep is a stroke with optional brush overrides.
type StrokeStep struct {
	Kernel   string      `yaml:"kernel"`
	Size     int         `yaml:"size"`
	Strength *float32    `yaml:"strength"`
	Invert   bool        `yaml:"invert"`
	Points   []PointStep `yaml:"points"`
}

// PointStep is one pointer sample in window pixels.
type PointStep struct {
	X        int16   `yaml:"x"`
	Y        int16   `yaml:"y"`
	Pressure float32 `yaml:"pressure"`
	Device   string  `yaml:"device"` // mouse, stylus, eraser
}

// HideStep hides one side of a window rectangle.
type HideStep struct {
	Rect [4]int16 `yaml:"rect"` // min_x, min_y, max_x, max_y
	Mode string   `yaml:"mode"` // outside, inside
}

// OrbitStep moves the camera.
type OrbitStep struct {
	DX   float32 `yaml:"dx"`
	DY   float32 `yaml:"dy"`
	Zoom float32 `yaml:"zoom"`
}

func loadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := decodeScript(f)
	if err != nil {
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return sc, nil
}

func decodeScript(r io.Reader) (*Script, error) {
	sc := &Script{
		Mesh:   MeshSpec{Primitive: "grid", Segments: [2]int{17, 17}, Spacing: 0.125, Major: 1, Minor: 0.35},
		Camera: CameraSpec{Fit: true},
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return sc, nil
}

func (s Step) validate() error {
	n := 0
	if s.Stroke != nil {
		n++
	}
	if s.Hide != nil {
		n++
	}
	if s.Reveal {
		n++
	}
	if s.Orbit != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("want exactly one of stroke, hide, reveal, orbit; got %d", n)
	}
	return nil
}

// build creates the primitive mesh.
func (ms MeshSpec) build() (*mesh.Mesh, error) {
	var m *mesh.Mesh
	switch strings.ToLower(ms.Primitive) {
	case "grid":
		m = mesh.Grid(ms.Segments[0], ms.Segments[1], ms.Spacing)
	case "torus":
		m = mesh.Torus(ms.Major, ms.Minor, ms.Segments[0], ms.Segments[1])
	default:
		return nil, fmt.Errorf("unknown primitive %q", ms.Primitive)
	}
	if ms.KeyShape != "" {
		m.AddKeyShape(ms.KeyShape).Locked = true
	}
	return m, nil
}

func (p PointStep) sample() (sculpt.PointerSample, error) {
	dev, err := parseDevice(p.Device)
	if err != nil {
		return sculpt.PointerSample{}, err
	}
	return sculpt.PointerSample{
		Pos:      viewport.ScreenPoint{X: p.X, Y: p.Y},
		Pressure: p.Pressure,
		Device:   dev,
		Held:     true,
	}, nil
}

func parseDevice(s string) (sculpt.Device, error) {
	switch strings.ToLower(s) {
	case "", "mouse":
		return sculpt.DeviceMouse, nil
	case "stylus", "pen":
		return sculpt.DeviceStylus, nil
	case "eraser":
		return sculpt.DeviceEraser, nil
	default:
		return 0, fmt.Errorf("unknown device %q", s)
	}
}

func (h HideStep) rect() viewport.Rect {
	return viewport.Rect{MinX: h.Rect[0], MinY: h.Rect[1], MaxX: h.Rect[2], MaxY: h.Rect[3]}.Canon()
}
