package mesh

import "github.com/Faultbox/midgard-sculpt/pkg/math"

// FaceNormal returns the unit normal of face f.
// Quads use the cross product of their diagonals, which tolerates non-planar quads.
func (m *Mesh) FaceNormal(f Face) math.Vec3 {
	p0 := m.Verts[f.V[0]].Position
	p1 := m.Verts[f.V[1]].Position
	p2 := m.Verts[f.V[2]].Position
	if f.Quad {
		p3 := m.Verts[f.V[3]].Position
		return p2.Sub(p0).Cross(p3.Sub(p1)).Normalize()
	}
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// RecalcNormals recomputes every vertex normal as the normalized sum of
// the normals of the faces using it. Vertices without faces keep their normal.
func (m *Mesh) RecalcNormals() {
	sums := make([]math.Vec3, len(m.Verts))
	used := make([]bool, len(m.Verts))
	for _, f := range m.Faces {
		n := m.FaceNormal(f)
		for c := 0; c < f.Len(); c++ {
			sums[f.V[c]] = sums[f.V[c]].Add(n)
			used[f.V[c]] = true
		}
	}
	for i := range m.Verts {
		if used[i] {
			m.Verts[i].Normal = sums[i].Normalize()
		}
	}
}

// BuildEdges replaces the edge list with the unique edges of all faces,
// in first-seen order. All edges are drawn.
func (m *Mesh) BuildEdges() {
	seen := make(map[[2]uint32]struct{}, len(m.Faces)*2)
	m.Edges = m.Edges[:0]
	for _, f := range m.Faces {
		n := f.Len()
		for c := 0; c < n; c++ {
			a, b := f.V[c], f.V[(c+1)%n]
			if a > b {
				a, b = b, a
			}
			k := [2]uint32{a, b}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			m.Edges = append(m.Edges, Edge{V: k, Draw: true})
		}
	}
}
