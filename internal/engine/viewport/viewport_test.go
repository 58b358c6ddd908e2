package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-sculpt/internal/engine/camera"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

func orthoViewport(target *mesh.Mesh) *Viewport {
	cam := camera.NewOrbitCamera()
	cam.Orthographic = true
	cam.OrthoScale = 2
	return New(200, 200, cam, target)
}

func TestProjectOrtho(t *testing.T) {
	v := orthoViewport(nil)
	assert.Equal(t, ScreenPoint{X: 100, Y: 100}, v.Project(math.Vec3{}))
	assert.Equal(t, ScreenPoint{X: 150, Y: 50}, v.Project(math.Vec3{X: 1, Y: 1}), "+Y is up on screen")
}

func TestUnprojectInvertsProject(t *testing.T) {
	v := orthoViewport(nil)
	p := math.Vec3{X: 1, Y: -0.5}
	s := v.Project(p)
	got := v.Unproject(s, 0.5)
	assert.InDelta(t, p.X, got.X, 1e-4)
	assert.InDelta(t, p.Y, got.Y, 1e-4)
}

func TestProjectPerspectiveBehindEye(t *testing.T) {
	v := New(100, 100, camera.NewOrbitCamera(), nil)
	s := v.Project(math.Vec3{Z: 20})
	assert.Equal(t, int16(-32768), s.X)
}

func TestSampleDepthHitsMesh(t *testing.T) {
	m := mesh.Grid(5, 5, 0.5)
	v := orthoViewport(m)

	d := v.SampleDepth(ScreenPoint{X: 100, Y: 100})
	assert.Less(t, d, float32(1))
	assert.Greater(t, d, float32(0))

	// The unprojected point lies on the grid plane.
	p := v.Unproject(ScreenPoint{X: 110, Y: 90}, v.SampleDepth(ScreenPoint{X: 110, Y: 90}))
	assert.InDelta(t, 0, p.Z, 1e-3)

	assert.Equal(t, float32(1), v.SampleDepth(ScreenPoint{X: 2, Y: 2}), "off the mesh reads the far plane")
}

func TestRect(t *testing.T) {
	r := RectAround(ScreenPoint{X: 10, Y: 20}, 5)
	assert.Equal(t, Rect{MinX: 5, MinY: 15, MaxX: 15, MaxY: 25}, r)
	assert.True(t, r.Contains(ScreenPoint{X: 15, Y: 25}))
	assert.False(t, r.Contains(ScreenPoint{X: 16, Y: 25}))

	u := r.Union(Rect{MinX: 0, MinY: 30, MaxX: 1, MaxY: 31})
	assert.Equal(t, Rect{MinX: 0, MinY: 15, MaxX: 15, MaxY: 31}, u)
	assert.Equal(t, Rect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}, Rect{MinX: 3, MinY: 4, MaxX: 1, MaxY: 2}.Canon())

	edge := RectAround(ScreenPoint{X: 32760, Y: 0}, 20)
	assert.Equal(t, int16(32767), edge.MaxX, "clamped to int16")
}

func TestScreenPointOffsetSaturates(t *testing.T) {
	p := ScreenPoint{X: 32760, Y: -32760}
	assert.Equal(t, ScreenPoint{X: 32767, Y: -32768}, p.Offset(100, -100))
	assert.Equal(t, ScreenPoint{X: 32761, Y: -32761}, p.Offset(1, -1))
}
