// Package camera provides the orbit camera used by the sculpt viewport.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FovY         float32 // Vertical field of view (radians)
	Near, Far    float32
	Orthographic bool
	OrthoScale   float32 // Half height of the orthographic view volume

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera looking at the origin down -Z.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10.0,
		FovY:            math32.Pi / 4,
		Near:            0.1,
		Far:             100.0,
		OrthoScale:      5.0,
		MinDistance:     0.5,
		MaxDistance:     500.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cx, sx := math32.Cos(c.RotationX), math32.Sin(c.RotationX)
	cy, sy := math32.Cos(c.RotationY), math32.Sin(c.RotationY)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cx * sy,
		Y: c.Distance * sx,
		Z: c.Distance * cx * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the projection matrix for a viewport with the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if c.Orthographic {
		h := c.OrthoScale
		return math.Ortho(-h*aspect, h*aspect, -h, h, c.Near, c.Far)
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	c.RotationX = min(max(c.RotationX, c.MinPitch), c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
	if c.Orthographic {
		c.OrthoScale -= delta * c.OrthoScale * c.ZoomSensitivity
	}
}

// FitToBounds centers the camera on a bounding box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(minP, maxP math.Vec3) {
	c.Center = minP.Add(maxP).Scale(0.5)

	radius := maxP.Sub(minP).Length() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius / math32.Sin(c.FovY/2) * 1.1
	c.OrthoScale = radius * 1.1
	c.Far = c.Distance + radius*4
	c.Near = c.Distance / 100
}
