// Package picking provides ray casting against meshes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with Y growing downward,
// viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unprojectNDC(invViewProj, ndcX, ndcY, -1)
	farWorld := unprojectNDC(invViewProj, ndcX, ndcY, 1)

	return Ray{Origin: nearWorld, Direction: farWorld.Sub(nearWorld).Normalize()}
}

func unprojectNDC(inv math.Mat4, x, y, z float32) math.Vec3 {
	p := inv.MulVec4(math.Vec4{x, y, z, 1})
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin.At(axis), r.Direction.At(axis)
		lo, hi := box.Min.At(axis), box.Max.At(axis)
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the ray distance to triangle (a, b, c), culling nothing.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	const eps = 1e-7
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, false // parallel
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectMesh returns the nearest hit of the ray with any face of m.
// Quads are tested as two triangles.
func (r Ray) IntersectMesh(m *mesh.Mesh) (t float32, face int, hit bool) {
	if len(m.Faces) == 0 {
		return 0, -1, false
	}
	b := m.Bounds()
	if _, ok := r.IntersectAABB(AABB{Min: b.Min, Max: b.Max}); !ok {
		return 0, -1, false
	}

	best := float32(gomath.MaxFloat32)
	face = -1
	for i, f := range m.Faces {
		p0 := m.Verts[f.V[0]].Position
		p1 := m.Verts[f.V[1]].Position
		p2 := m.Verts[f.V[2]].Position
		if d, ok := r.IntersectTriangle(p0, p1, p2); ok && d < best {
			best, face = d, i
		}
		if f.Quad {
			p3 := m.Verts[f.V[3]].Position
			if d, ok := r.IntersectTriangle(p0, p2, p3); ok && d < best {
				best, face = d, i
			}
		}
	}
	if face < 0 {
		return 0, -1, false
	}
	return best, face, true
}
