package sculpt

import (
	"slices"

	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// VertexUsers maps each vertex to the faces that reference it.
// All lists share one node array; vertex v owns nodes[start[v]:start[v+1]].
type VertexUsers struct {
	start []int32
	nodes []int32

	faces int
}

// BuildVertexUsers indexes the faces of m. A mesh without faces yields an
// index whose queries all return nothing.
func BuildVertexUsers(m *mesh.Mesh) *VertexUsers {
	u := &VertexUsers{start: make([]int32, len(m.Verts)+1), faces: len(m.Faces)}

	total := 0
	for _, f := range m.Faces {
		for c := 0; c < f.Len(); c++ {
			u.start[f.V[c]+1]++
		}
		total += f.Len()
	}
	for v := range len(m.Verts) {
		u.start[v+1] += u.start[v]
	}

	u.nodes = make([]int32, total)
	fill := make([]int32, len(m.Verts))
	copy(fill, u.start[:len(m.Verts)])
	for fi, f := range m.Faces {
		for c := 0; c < f.Len(); c++ {
			v := f.V[c]
			u.nodes[fill[v]] = int32(fi)
			fill[v]++
		}
	}
	return u
}

// Faces returns the indices of the faces using vertex v.
// The slice aliases the index and must not be modified.
func (u *VertexUsers) Faces(v uint32) []int32 {
	if int(v)+1 >= len(u.start) {
		return nil
	}
	return u.nodes[u.start[v]:u.start[v+1]]
}

// Count returns the number of faces using vertex v.
func (u *VertexUsers) Count(v uint32) int {
	return len(u.Faces(v))
}

// Stale reports whether m's vertex or face count no longer matches the index.
func (u *VertexUsers) Stale(m *mesh.Mesh) bool {
	return len(u.start)-1 != len(m.Verts) || u.faces != len(m.Faces)
}

// VertexNormal recomputes the normal of v from the faces using it.
// A vertex without faces keeps its current normal.
func (u *VertexUsers) VertexNormal(m *mesh.Mesh, v uint32) math.Vec3 {
	faces := u.Faces(v)
	if len(faces) == 0 {
		return m.Verts[v].Normal
	}
	var sum math.Vec3
	for _, fi := range faces {
		sum = sum.Add(m.FaceNormal(m.Faces[fi]))
	}
	return sum.Normalize()
}

// Neighbors appends the vertices sharing an edge with v to dst, each once.
// For quads the diagonal vertex is skipped. A vertex used by one face is a
// corner and gets no neighbors. A vertex used by two faces lies on a border
// and only takes neighbors that are themselves on the border, so the border
// does not shrink inward.
func (u *VertexUsers) Neighbors(m *mesh.Mesh, v uint32, dst []uint32) []uint32 {
	faces := u.Faces(v)
	if len(faces) == 1 {
		return dst
	}
	border := len(faces) == 2

	base := len(dst)
	for _, fi := range faces {
		f := m.Faces[fi]
		n := f.Len()
		self := 0
		for c := 0; c < n; c++ {
			if f.V[c] == v {
				self = c
				break
			}
		}
		for c := 0; c < n; c++ {
			if c == self || (f.Quad && c == (self+2)%4) {
				continue
			}
			w := f.V[c]
			if border && u.Count(w) > 2 {
				continue
			}
			if !slices.Contains(dst[base:], w) {
				dst = append(dst, w)
			}
		}
	}
	return dst
}
