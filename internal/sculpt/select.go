package sculpt

import "github.com/Faultbox/midgard-sculpt/internal/mesh"

// ActiveVertex is a vertex inside the brush with its weight.
type ActiveVertex struct {
	Index uint32
	Fade  float32
	Dist  float32
}

// selectActive appends to dst every flagged vertex closer than the brush
// radius to the brush center, weighted by the modulator times bstr.
func selectActive(m *mesh.Mesh, proj *Projection, ed *EditData, mod *modulator, bstr float32, dst []ActiveVertex) []ActiveVertex {
	for i := range proj.Verts {
		pv := &proj.Verts[i]
		if !pv.Inside {
			continue
		}
		pos := m.Verts[i].Position
		d := pos.Distance(ed.Center)
		if d >= ed.Radius {
			continue
		}
		dst = append(dst, ActiveVertex{
			Index: uint32(i),
			Fade:  mod.intensity(ed, pos, d, pv.Screen) * bstr,
			Dist:  d,
		})
	}
	return dst
}
