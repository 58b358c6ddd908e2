package sculpt

import (
	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// Viewport maps between model space and window pixels.
// *viewport.Viewport implements it.
type Viewport interface {
	Project(p math.Vec3) viewport.ScreenPoint
	Unproject(s viewport.ScreenPoint, depth float32) math.Vec3
	// SampleDepth returns the window depth in [0, 1] under s.
	SampleDepth(s viewport.ScreenPoint) float32
}

// ProjectedVertex is the cached screen position of a vertex.
// Inside is set once the vertex falls in any brush rectangle of the sample.
type ProjectedVertex struct {
	Screen viewport.ScreenPoint
	Inside bool
}

// Projection caches the screen positions of every vertex for one sample.
type Projection struct {
	Verts []ProjectedVertex
}

// Refresh projects every vertex of m and clears all Inside flags.
func (p *Projection) Refresh(m *mesh.Mesh, vp Viewport) {
	if cap(p.Verts) < len(m.Verts) {
		p.Verts = make([]ProjectedVertex, len(m.Verts))
	}
	p.Verts = p.Verts[:len(m.Verts)]
	for i, v := range m.Verts {
		p.Verts[i] = ProjectedVertex{Screen: vp.Project(v.Position)}
	}
}

// MarkRegion flags every vertex projected inside r.
func (p *Projection) MarkRegion(r viewport.Rect) {
	for i := range p.Verts {
		if !p.Verts[i].Inside && r.Contains(p.Verts[i].Screen) {
			p.Verts[i].Inside = true
		}
	}
}
