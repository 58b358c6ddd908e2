package sculpt

import (
	"fmt"
	"strings"

	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// HideMode selects which side of the hide rectangle disappears.
type HideMode uint8

const (
	// HideOutside keeps only what lies inside the rectangle.
	HideOutside HideMode = iota
	// HideInside removes what lies inside the rectangle.
	HideInside
)

func (h HideMode) String() string {
	if h == HideInside {
		return "inside"
	}
	return "outside"
}

// ParseHideMode parses "outside" or "inside". Empty means outside.
func ParseHideMode(s string) (HideMode, error) {
	switch strings.ToLower(s) {
	case "", "outside":
		return HideOutside, nil
	case "inside":
		return HideInside, nil
	default:
		return 0, fmt.Errorf("sculpt: unknown hide mode %q", s)
	}
}

// HiddenState records a partial hide so it can be reverted exactly.
type HiddenState struct {
	// Remap maps original vertex indices to the reordered array.
	// Values below Shown are visible.
	Remap []uint32
	Shown int

	faces []mesh.Face
	edges []mesh.Edge

	hiddenVerts []mesh.Vertex
	hiddenKey   []math.Vec3
}

// Hidden reports whether original vertex i is hidden.
func (h *HiddenState) Hidden(i int) bool {
	return int(h.Remap[i]) >= h.Shown
}

// slab is the volume under a screen rectangle between the near and far planes.
type slab struct {
	origin [4]math.Vec3
	normal [4]math.Vec3
}

func newSlab(vp Viewport, r viewport.Rect) slab {
	r = r.Canon()
	corners := [4]viewport.ScreenPoint{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
	var near, far [4]math.Vec3
	var mid math.Vec3
	for i, c := range corners {
		near[i] = vp.Unproject(c, 0)
		far[i] = vp.Unproject(c, 1)
		mid = mid.Add(near[i]).Add(far[i])
	}
	mid = mid.Scale(1.0 / 8)

	var s slab
	for i := range 4 {
		j := (i + 1) % 4
		n := near[j].Sub(near[i]).Cross(far[i].Sub(near[i]))
		if n.Dot(mid.Sub(near[i])) < 0 {
			n = n.Scale(-1)
		}
		s.origin[i] = near[i]
		s.normal[i] = n
	}
	return s
}

func (s *slab) contains(p math.Vec3) bool {
	for i := range 4 {
		if s.normal[i].Dot(p.Sub(s.origin[i])) < 0 {
			return false
		}
	}
	return true
}

// hideVertices hides the vertices of m on the mode's side of rect.
// Vertices hidden by prev stay hidden; prev must already be reverted.
// It returns nil when nothing would be hidden.
func hideVertices(m *mesh.Mesh, vp Viewport, rect viewport.Rect, mode HideMode, prev *HiddenState) *HiddenState {
	s := newSlab(vp, rect)
	hide := make([]bool, len(m.Verts))
	shown := 0
	for i, v := range m.Verts {
		hide[i] = s.contains(v.Position) == (mode == HideInside)
		if prev != nil && prev.Hidden(i) {
			hide[i] = true
		}
		if !hide[i] {
			shown++
		}
	}
	if shown == len(m.Verts) {
		return nil
	}

	h := &HiddenState{
		Remap: make([]uint32, len(m.Verts)),
		Shown: shown,
		faces: m.Faces,
		edges: m.Edges,
	}
	next, tail := uint32(0), uint32(shown)
	for i := range m.Verts {
		if hide[i] {
			h.Remap[i] = tail
			tail++
		} else {
			h.Remap[i] = next
			next++
		}
	}

	verts := make([]mesh.Vertex, len(m.Verts))
	for i, v := range m.Verts {
		verts[h.Remap[i]] = v
	}
	h.hiddenVerts = verts[shown:]
	m.Verts = verts[:shown:shown]

	if m.Key != nil && len(m.Key.Data) == len(verts) {
		data := make([]math.Vec3, len(verts))
		for i, p := range m.Key.Data {
			data[h.Remap[i]] = p
		}
		h.hiddenKey = data[shown:]
		m.Key.Data = data[:shown:shown]
	}

	faces := make([]mesh.Face, 0, len(h.faces))
	for _, f := range h.faces {
		nf, ok := h.remapFace(f)
		if ok {
			faces = append(faces, nf)
		}
	}
	m.Faces = faces

	edges := make([]mesh.Edge, 0, len(h.edges))
	for _, e := range h.edges {
		a, b := h.Remap[e.V[0]], h.Remap[e.V[1]]
		if int(a) < shown && int(b) < shown {
			edges = append(edges, mesh.Edge{V: [2]uint32{a, b}, Draw: e.Draw})
		}
	}
	m.Edges = edges
	return h
}

func (h *HiddenState) remapFace(f mesh.Face) (mesh.Face, bool) {
	for c := 0; c < f.Len(); c++ {
		f.V[c] = h.Remap[f.V[c]]
		if int(f.V[c]) >= h.Shown {
			return f, false
		}
	}
	return f, true
}

// revert restores the original vertex order and the saved faces and
// edges. Positions written while hidden are kept. It reports false and
// leaves m untouched when the visible vertex count no longer matches.
func (h *HiddenState) revert(m *mesh.Mesh) bool {
	if len(m.Verts) != h.Shown {
		return false
	}
	all := make([]mesh.Vertex, 0, len(h.Remap))
	all = append(append(all, m.Verts...), h.hiddenVerts...)
	verts := make([]mesh.Vertex, len(h.Remap))
	for i := range verts {
		verts[i] = all[h.Remap[i]]
	}
	m.Verts = verts

	if m.Key != nil && h.hiddenKey != nil {
		all := append(append(make([]math.Vec3, 0, len(h.Remap)), m.Key.Data...), h.hiddenKey...)
		data := make([]math.Vec3, len(h.Remap))
		for i := range data {
			data[i] = all[h.Remap[i]]
		}
		m.Key.Data = data
	}

	m.Faces = h.faces
	m.Edges = h.edges
	return true
}
