// Package mesh provides the editable polygon mesh shared by sculpting and display code.
package mesh

import "github.com/Faultbox/midgard-sculpt/pkg/math"

// Vertex is a mesh vertex with position and unit normal.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Face is a triangle or quad. V[3] is unused for triangles.
type Face struct {
	V    [4]uint32
	Quad bool
}

// Tri returns a triangle face.
func Tri(a, b, c uint32) Face {
	return Face{V: [4]uint32{a, b, c, 0}}
}

// QuadFace returns a quad face.
func QuadFace(a, b, c, d uint32) Face {
	return Face{V: [4]uint32{a, b, c, d}, Quad: true}
}

// Len returns the number of corners (3 or 4).
func (f Face) Len() int {
	if f.Quad {
		return 4
	}
	return 3
}

// Edge connects two vertices. Draw marks edges shown in wireframe display.
type Edge struct {
	V    [2]uint32
	Draw bool
}

// KeyShape is a morph target holding one position per vertex.
// Sculpting writes through to Data only while Locked is set.
type KeyShape struct {
	Name   string
	Data   []math.Vec3
	Locked bool
}

// Mesh holds vertex, face and edge arrays.
type Mesh struct {
	Name  string
	Verts []Vertex
	Faces []Face
	Edges []Edge

	// Key is the active key shape, nil when the mesh has none.
	Key *KeyShape

	// ReadOnly is set for meshes linked from an external library.
	ReadOnly bool
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Bounds returns the axis-aligned bounds of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Verts) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Verts[0].Position, Max: m.Verts[0].Position}
	for _, v := range m.Verts[1:] {
		p := v.Position
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Name:     m.Name,
		Verts:    append([]Vertex(nil), m.Verts...),
		Faces:    append([]Face(nil), m.Faces...),
		Edges:    append([]Edge(nil), m.Edges...),
		ReadOnly: m.ReadOnly,
	}
	if m.Key != nil {
		c.Key = &KeyShape{
			Name:   m.Key.Name,
			Data:   append([]math.Vec3(nil), m.Key.Data...),
			Locked: m.Key.Locked,
		}
	}
	return c
}

// AddKeyShape snapshots the current positions into a new active key shape.
func (m *Mesh) AddKeyShape(name string) *KeyShape {
	k := &KeyShape{Name: name, Data: make([]math.Vec3, len(m.Verts))}
	for i, v := range m.Verts {
		k.Data[i] = v.Position
	}
	m.Key = k
	return k
}
