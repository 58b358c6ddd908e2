// Package viewport maps between model space and window pixels for a camera and mesh.
package viewport

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sculpt/internal/engine/camera"
	"github.com/Faultbox/midgard-sculpt/internal/engine/picking"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// ScreenPoint is a window pixel coordinate. Y grows downward.
type ScreenPoint struct {
	X, Y int16
}

// Offset returns p moved by (dx, dy), saturating at the int16 range.
func (p ScreenPoint) Offset(dx, dy int) ScreenPoint {
	return ScreenPoint{X: clamp16(int(p.X) + dx), Y: clamp16(int(p.Y) + dy)}
}

// Rect is an inclusive pixel rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY int16
}

// RectAround returns the square of half-size r centered on p.
func RectAround(p ScreenPoint, r int) Rect {
	return Rect{
		MinX: clamp16(int(p.X) - r),
		MinY: clamp16(int(p.Y) - r),
		MaxX: clamp16(int(p.X) + r),
		MaxY: clamp16(int(p.Y) + r),
	}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p ScreenPoint) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Canon returns r with min and max swapped where needed.
func (r Rect) Canon() Rect {
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// Viewport projects through an orbit camera onto a Width x Height window.
// Depth values are window depth in [0, 1] (0 = near plane).
type Viewport struct {
	Width, Height int
	Camera        *camera.OrbitCamera

	// Model is the object transform. Identity by default.
	Model math.Mat4

	// Target is ray cast by SampleDepth. A nil target reads as empty depth.
	Target *mesh.Mesh

	mvp math.Mat4
	inv math.Mat4
}

// New creates a viewport and computes its matrices.
func New(width, height int, cam *camera.OrbitCamera, target *mesh.Mesh) *Viewport {
	v := &Viewport{
		Width:  width,
		Height: height,
		Camera: cam,
		Model:  math.Identity(),
		Target: target,
	}
	v.Update()
	return v
}

// Update recomputes the cached matrices. Call after moving the camera.
func (v *Viewport) Update() {
	aspect := float32(v.Width) / float32(max(v.Height, 1))
	v.mvp = v.Camera.ViewProjection(aspect).Mul(v.Model)
	v.inv = v.mvp.Inverse()
}

// ModelViewProjection returns the combined matrix used for projection.
func (v *Viewport) ModelViewProjection() math.Mat4 {
	return v.mvp
}

// Project maps a model-space point to window pixels.
// Points behind a perspective eye map to the int16 minimum.
func (v *Viewport) Project(p math.Vec3) ScreenPoint {
	ndc, w := v.mvp.Project(p)
	if w <= 0 {
		return ScreenPoint{X: gomath.MinInt16, Y: gomath.MinInt16}
	}
	x := (ndc.X + 1) / 2 * float32(v.Width)
	y := (1 - ndc.Y) / 2 * float32(v.Height)
	return ScreenPoint{X: clamp16(int(math32.Floor(x + 0.5))), Y: clamp16(int(math32.Floor(y + 0.5)))}
}

// Unproject maps a window pixel at the given depth back to model space.
func (v *Viewport) Unproject(s ScreenPoint, depth float32) math.Vec3 {
	ndc := math.Vec4{
		2*float32(s.X)/float32(v.Width) - 1,
		1 - 2*float32(s.Y)/float32(v.Height),
		2*depth - 1,
		1,
	}
	p := v.inv.MulVec4(ndc)
	if p[3] != 0 {
		return math.Vec3{X: p[0] / p[3], Y: p[1] / p[3], Z: p[2] / p[3]}
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// SampleDepth returns the depth of the target surface under pixel s,
// or 1 (the far plane) when nothing is hit.
func (v *Viewport) SampleDepth(s ScreenPoint) float32 {
	if v.Target == nil {
		return 1
	}
	ray := picking.ScreenToRay(float32(s.X), float32(s.Y), float32(v.Width), float32(v.Height), v.inv)
	t, _, hit := ray.IntersectMesh(v.Target)
	if !hit {
		return 1
	}
	ndc, _ := v.mvp.Project(ray.At(t))
	return min(max((ndc.Z+1)/2, 0), 1)
}

func clamp16(i int) int16 {
	return int16(min(max(i, gomath.MinInt16), gomath.MaxInt16))
}
