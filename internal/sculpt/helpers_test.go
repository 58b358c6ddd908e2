package sculpt

import (
	"context"
	"io"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// orthoView looks down -Z with scale pixels per unit, model origin at
// (cx, cy). Depth 0 is z=+1 and depth 1 is z=-1; SampleDepth is constant.
type orthoView struct {
	scale  float32
	cx, cy float32
	depth  float32
}

func newOrthoView() orthoView {
	return orthoView{scale: 100, cx: 200, cy: 200, depth: 0.5}
}

func (v orthoView) Project(p math.Vec3) viewport.ScreenPoint {
	return viewport.ScreenPoint{
		X: int16(math32.Floor(v.cx + p.X*v.scale + 0.5)),
		Y: int16(math32.Floor(v.cy - p.Y*v.scale + 0.5)),
	}
}

func (v orthoView) Unproject(s viewport.ScreenPoint, depth float32) math.Vec3 {
	return math.Vec3{
		X: (float32(s.X) - v.cx) / v.scale,
		Y: (v.cy - float32(s.Y)) / v.scale,
		Z: 1 - 2*depth,
	}
}

func (v orthoView) SampleDepth(viewport.ScreenPoint) float32 {
	return v.depth
}

// recordingHost records every side effect.
type recordingHost struct {
	labels  []string
	flushes int
	redraws [][]viewport.Rect
}

func (h *recordingHost) PushUndoSnapshot(label string) {
	h.labels = append(h.labels, label)
}

func (h *recordingHost) FlushDependencyUpdate(*mesh.Mesh) {
	h.flushes++
}

func (h *recordingHost) Redraw(damaged []viewport.Rect) {
	h.redraws = append(h.redraws, append([]viewport.Rect(nil), damaged...))
}

// sliceSource replays fixed samples, then reports io.EOF.
type sliceSource struct {
	samples []PointerSample
}

func (s *sliceSource) Next(ctx context.Context) (PointerSample, error) {
	if err := ctx.Err(); err != nil {
		return PointerSample{}, err
	}
	if len(s.samples) == 0 {
		return PointerSample{}, io.EOF
	}
	ps := s.samples[0]
	s.samples = s.samples[1:]
	return ps, nil
}

// blockingSource blocks until ctx is done.
type blockingSource struct{}

func (blockingSource) Next(ctx context.Context) (PointerSample, error) {
	<-ctx.Done()
	return PointerSample{}, ctx.Err()
}

// constTexture samples the same value everywhere.
type constTexture float32

func (c constTexture) Sample2D(u, v float32) float32 { return float32(c) }
func (c constTexture) Sample3D(math.Vec3) float32    { return float32(c) }

// spyTexture records the coordinates it was sampled at.
type spyTexture struct {
	uv  []math.Vec2
	xyz []math.Vec3
}

func (s *spyTexture) Sample2D(u, v float32) float32 {
	s.uv = append(s.uv, math.Vec2{X: u, Y: v})
	return 1
}

func (s *spyTexture) Sample3D(p math.Vec3) float32 {
	s.xyz = append(s.xyz, p)
	return 1
}

func testSettings(kind KernelKind) Settings {
	s := DefaultSettings()
	s.Brush = Brush{Kind: kind, Size: 120, Strength: 50, Fade: true}
	return s
}

// newTestEngine returns an engine over a 3x3 unit grid centered on
// pixel (200, 200), 100 pixels per unit.
func newTestEngine(kind KernelKind) (*Engine, *mesh.Mesh, *recordingHost) {
	m := mesh.Grid(3, 3, 1)
	host := &recordingHost{}
	e := NewEngine(testSettings(kind), newOrthoView(), host)
	if err := e.SetMesh(m); err != nil {
		panic(err)
	}
	return e, m, host
}

func at(x, y int16) PointerSample {
	return PointerSample{Pos: viewport.ScreenPoint{X: x, Y: y}, Held: true}
}

func positions(m *mesh.Mesh) []math.Vec3 {
	out := make([]math.Vec3, len(m.Verts))
	for i, v := range m.Verts {
		out[i] = v.Position
	}
	return out
}
