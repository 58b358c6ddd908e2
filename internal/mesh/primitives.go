package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// Grid builds a flat nx*ny vertex grid of quads in the XY plane, centered
// on the origin, facing +Z. Vertex (x, y) has index y*nx + x.
func Grid(nx, ny int, spacing float32) *Mesh {
	m := &Mesh{Name: "Grid"}
	if nx < 2 || ny < 2 {
		return m
	}

	offX := float32(nx-1) * spacing / 2
	offY := float32(ny-1) * spacing / 2
	m.Verts = make([]Vertex, 0, nx*ny)
	for y := range ny {
		for x := range nx {
			m.Verts = append(m.Verts, Vertex{
				Position: math.Vec3{X: float32(x)*spacing - offX, Y: float32(y)*spacing - offY},
				Normal:   math.Vec3{Z: 1},
			})
		}
	}

	m.Faces = make([]Face, 0, (nx-1)*(ny-1))
	for y := range ny - 1 {
		for x := range nx - 1 {
			i := uint32(y*nx + x)
			m.Faces = append(m.Faces, QuadFace(i, i+1, i+1+uint32(nx), i+uint32(nx)))
		}
	}
	m.BuildEdges()
	return m
}

// Torus builds a closed quad torus around the Z axis with nu segments
// around the ring and nv around the tube. Every vertex has valence 4.
func Torus(major, minor float32, nu, nv int) *Mesh {
	m := &Mesh{Name: "Torus"}
	if nu < 3 || nv < 3 {
		return m
	}

	m.Verts = make([]Vertex, 0, nu*nv)
	for i := range nu {
		u := 2 * math32.Pi * float32(i) / float32(nu)
		cu, su := math32.Cos(u), math32.Sin(u)
		for j := range nv {
			v := 2 * math32.Pi * float32(j) / float32(nv)
			cv, sv := math32.Cos(v), math32.Sin(v)
			m.Verts = append(m.Verts, Vertex{
				Position: math.Vec3{X: (major + minor*cv) * cu, Y: (major + minor*cv) * su, Z: minor * sv},
				Normal:   math.Vec3{X: cv * cu, Y: cv * su, Z: sv},
			})
		}
	}

	idx := func(i, j int) uint32 {
		return uint32((i%nu)*nv + j%nv)
	}
	m.Faces = make([]Face, 0, nu*nv)
	for i := range nu {
		for j := range nv {
			m.Faces = append(m.Faces, QuadFace(idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)))
		}
	}
	m.BuildEdges()
	return m
}
