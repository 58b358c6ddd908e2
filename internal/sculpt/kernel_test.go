package sculpt

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

func stroke(t *testing.T, e *Engine, samples ...PointerSample) *Session {
	t.Helper()
	s, err := e.BeginStroke(e.Brush())
	require.NoError(t, err)
	for _, ps := range samples {
		require.NoError(t, s.OnPointerSample(ps))
	}
	require.NoError(t, s.End())
	return s
}

func TestDrawFalloffOnGrid(t *testing.T) {
	e, m, host := newTestEngine(KindDraw)
	before := positions(m)

	stroke(t, e, at(200, 200))

	// size 120px at 100px per unit: radius 1.2, base strength 0.5*120/50.
	bstr := float32(0.5 * 120.0 / 50.0)
	assert.InDelta(t, bstr, m.Verts[4].Position.Z, 1e-5, "center moves by the full strength")

	edge := bstr * falloff(1, 1.2)
	for _, i := range []int{1, 3, 5, 7} {
		assert.InDelta(t, edge, m.Verts[i].Position.Z, 1e-5, "edge vertex %d", i)
		assert.Less(t, m.Verts[i].Position.Z, m.Verts[4].Position.Z)
	}
	for _, i := range []int{0, 2, 6, 8} {
		assert.Equal(t, before[i], m.Verts[i].Position, "corner %d is outside the radius", i)
	}
	for i, v := range m.Verts {
		assert.Equal(t, before[i].X, v.Position.X, "draw moves along the area normal only")
		assert.Equal(t, before[i].Y, v.Position.Y)
	}
	assert.Equal(t, []string{"Draw Brush"}, host.labels)
}

func TestSmoothMovesToEdgeNeighborAverage(t *testing.T) {
	e, m, _ := newTestEngine(KindSmooth)
	e.settings.Brush.Strength = 100
	e.settings.Brush.Fade = false
	m.Verts[4].Position = math.Vec3{X: 0.2, Y: 0.1, Z: 0.3}
	before := positions(m)

	stroke(t, e, at(200, 200))

	assert.Equal(t, math.Vec3{}, m.Verts[4].Position, "average of vertices 1, 3, 5 and 7")
	for _, i := range []int{1, 3, 5, 7} {
		assert.Equal(t, before[i], m.Verts[i].Position, "border vertex %d stays on its border line", i)
	}
}

func TestMirrorClipEveryKernel(t *testing.T) {
	for kind := KindDraw; kind <= KindFlatten; kind++ {
		t.Run(kind.String(), func(t *testing.T) {
			e, m, _ := newTestEngine(kind)
			e.settings.Mirror = Mirror{Clip: math.AxisX, Tolerance: 0.01}
			m.Verts[4].Position.X = 0.005
			m.Verts[4].Position.Z = 0.1

			stroke(t, e, at(215, 205), at(245, 205), at(260, 190))

			assert.Equal(t, float32(0), m.Verts[4].Position.X)
		})
	}
}

func TestGrabMovesCapturedSetByTotalDelta(t *testing.T) {
	paths := map[string][]PointerSample{
		"direct":  {at(200, 200), at(260, 230)},
		"stepped": {at(200, 200), at(210, 205), at(225, 212), at(240, 220), at(250, 226), at(260, 230)},
	}
	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			e, m, _ := newTestEngine(KindGrab)
			e.settings.Brush.Fade = false
			before := positions(m)

			s := stroke(t, e, path...)

			delta := math.Vec3{X: 0.6, Y: -0.3}
			for _, i := range []int{1, 3, 4, 5, 7} {
				want := before[i].Add(delta)
				got := m.Verts[i].Position
				assert.InDelta(t, want.X, got.X, 1e-5, "vertex %d", i)
				assert.InDelta(t, want.Y, got.Y, 1e-5, "vertex %d", i)
				assert.InDelta(t, want.Z, got.Z, 1e-5, "vertex %d", i)
			}
			for _, i := range []int{0, 2, 6, 8} {
				assert.Equal(t, before[i], m.Verts[i].Position, "corner %d was never captured", i)
			}
			assert.Equal(t, len(path), s.Stats().Applied)
		})
	}
}

func TestGrabKeepsInitialSelection(t *testing.T) {
	e, m, _ := newTestEngine(KindGrab)
	before := positions(m)

	s, err := e.BeginStroke(e.Brush())
	require.NoError(t, err)
	require.NoError(t, s.OnPointerSample(at(200, 200)))
	grab := s.Kernel().(Grab)
	captured := append([]ActiveVertex(nil), grab.State.Active[0]...)
	require.Len(t, captured, 5)

	// Drag far enough that the corners would be under a re-evaluated brush.
	require.NoError(t, s.OnPointerSample(at(300, 100)))
	require.NoError(t, s.End())

	assert.Equal(t, before[8], m.Verts[8].Position)
	for _, a := range captured {
		moved := m.Verts[a.Index].Position.Sub(before[a.Index])
		want := math.Vec3{X: 1, Y: 1}.Scale(a.Fade)
		assert.InDelta(t, want.X, moved.X, 1e-5)
		assert.InDelta(t, want.Y, moved.Y, 1e-5)
	}
}

func TestLayerDisplacementIsMonotonic(t *testing.T) {
	for _, invert := range []bool{false, true} {
		e, m, _ := newTestEngine(KindLayer)
		e.settings.Brush.Airbrush = true
		e.settings.Brush.Invert = invert

		s, err := e.BeginStroke(e.Brush())
		require.NoError(t, err)
		st := s.Kernel().(Layer).State
		bstr := baseStrength(e.Brush(), 120, invert, 1)

		prev := make([]float32, len(m.Verts))
		for range 30 {
			require.NoError(t, s.OnPointerSample(at(200, 200)))
			for i, d := range st.Disp {
				assert.GreaterOrEqual(t, math32.Abs(d), math32.Abs(prev[i]), "vertex %d shrank", i)
				assert.LessOrEqual(t, math32.Abs(d), math32.Abs(bstr)+1e-6, "vertex %d passed the layer height", i)
			}
			copy(prev, st.Disp)
		}
		assert.InDelta(t, bstr, st.Disp[4], 1e-5, "center reaches the layer height")
		assert.InDelta(t, bstr, m.Verts[4].Position.Z, 1e-5)
		require.NoError(t, s.End())
	}
}

func TestInflateFollowsVertexNormals(t *testing.T) {
	e, m, _ := newTestEngine(KindInflate)
	m.Verts[4].Normal = math.Vec3{X: 1}
	before := positions(m)

	stroke(t, e, at(200, 200))

	bstr := baseStrength(e.Brush(), 120, false, 1)
	assert.InDelta(t, before[4].X+bstr, m.Verts[4].Position.X, 1e-5)
	assert.InDelta(t, 0, m.Verts[4].Position.Z, 1e-6)
	assert.Greater(t, m.Verts[1].Position.Z, float32(0))
}

func TestPinchPullsTowardCenter(t *testing.T) {
	e, m, _ := newTestEngine(KindPinch)
	e.settings.Brush.Strength = 100
	e.settings.Brush.Fade = false

	stroke(t, e, at(200, 200))

	assert.InDelta(t, -0.9, m.Verts[3].Position.X, 1e-6, "10 percent toward the center")
	assert.InDelta(t, 0.9, m.Verts[5].Position.X, 1e-6)
	assert.Equal(t, math.Vec3{}, m.Verts[4].Position)

	e.settings.Brush.Invert = true
	stroke(t, e, at(205, 200))
	assert.Less(t, m.Verts[3].Position.X, float32(-0.9), "inverted pinch pushes away")
}

func TestFlattenPullsOntoRimPlane(t *testing.T) {
	m := mesh.Grid(5, 5, 0.5)
	m.Verts[12].Position.Z = 0.4
	e := NewEngine(testSettings(KindFlatten), newOrthoView(), nil)
	require.NoError(t, e.SetMesh(m))
	e.settings.Brush.Strength = 100
	e.settings.Brush.Fade = false

	stroke(t, e, at(200, 200))

	assert.InDelta(t, 0, m.Verts[12].Position.Z, 1e-5, "rim vertices define the plane z=0")
}

func TestFlattenRimSample(t *testing.T) {
	m := mesh.Grid(5, 5, 1)
	for i := range m.Verts {
		m.Verts[i].Position.Z = float32(i) / 100
	}
	var active []ActiveVertex
	for i := range m.Verts {
		active = append(active, ActiveVertex{Index: uint32(i), Fade: 1, Dist: float32(i)})
	}
	kc := &kernelContext{w: newWriter(m), users: BuildVertexUsers(m)}
	kc.flatten(&EditData{}, active)

	// The ten farthest are 15..24 with mean z 0.195.
	for i, v := range m.Verts {
		assert.InDelta(t, 0.195, v.Position.Z, 1e-5, "vertex %d", i)
	}
}

func TestSmoothConvergesOnTorus(t *testing.T) {
	m := mesh.Torus(2, 0.7, 16, 12)
	m.Verts[40].Position = m.Verts[40].Position.Add(m.Verts[40].Normal.Scale(0.3))
	m.Verts[100].Position = m.Verts[100].Position.Add(m.Verts[100].Normal.Scale(-0.2))

	users := BuildVertexUsers(m)
	active := make([]ActiveVertex, len(m.Verts))
	for i := range active {
		active[i] = ActiveVertex{Index: uint32(i), Fade: 0.5}
	}
	kc := &kernelContext{w: newWriter(m), users: users}

	deviation := func(i uint32) float32 {
		nb := users.Neighbors(m, i, nil)
		var avg math.Vec3
		for _, j := range nb {
			avg = avg.Add(m.Verts[j].Position)
		}
		return avg.Scale(1 / float32(len(nb))).Distance(m.Verts[i].Position)
	}
	maxDeviation := func() float32 {
		worst := float32(0)
		for i := range m.Verts {
			worst = max(worst, deviation(uint32(i)))
		}
		return worst
	}

	spike := deviation(40)
	prev := maxDeviation()
	for i := range 20 {
		kc.smooth(&EditData{}, active)
		cur := maxDeviation()
		assert.LessOrEqual(t, cur, prev+1e-6, "iteration %d", i)
		prev = cur
		if i == 0 {
			assert.Less(t, deviation(40), spike)
		}
	}
	assert.Less(t, deviation(40), spike/2)
}

func TestSmoothLeavesCornersAlone(t *testing.T) {
	m := mesh.Grid(3, 3, 1)
	m.Verts[0].Position.Z = 1
	kc := &kernelContext{w: newWriter(m), users: BuildVertexUsers(m)}
	kc.smooth(&EditData{}, []ActiveVertex{{Index: 0, Fade: 1}})
	assert.Equal(t, float32(1), m.Verts[0].Position.Z)
}

func TestAreaNormalViewBlend(t *testing.T) {
	m := mesh.Grid(3, 3, 1)
	kc := &kernelContext{w: newWriter(m), view: 1}
	ed := &EditData{Out: math.Vec3{X: 1}}
	active := []ActiveVertex{{Index: 4}}

	assert.Equal(t, math.Vec3{X: 1}, kc.areaNormal(ed, active))

	kc.view = 0.5
	n := kc.areaNormal(ed, active)
	assert.InDelta(t, math32.Sqrt(0.5), n.X, 1e-6)
	assert.InDelta(t, math32.Sqrt(0.5), n.Z, 1e-6)
}

func TestKernelNoActiveVerticesIsNoop(t *testing.T) {
	m := mesh.Grid(3, 3, 1)
	before := positions(m)
	kc := &kernelContext{w: newWriter(m), users: BuildVertexUsers(m)}
	for kind := KindDraw; kind <= KindFlatten; kind++ {
		k, err := newKernel(kind, m)
		require.NoError(t, err)
		kc.apply(k, &EditData{}, nil)
	}
	assert.Equal(t, before, positions(m))
	assert.Empty(t, kc.w.takeDamaged())
}

func TestWriterCopiesIntoLockedKey(t *testing.T) {
	m := mesh.Grid(3, 3, 1)
	m.AddKeyShape("Basis").Locked = true
	w := newWriter(m)
	w.set(&EditData{}, 4, math.Vec3{Z: 2})

	assert.Equal(t, math.Vec3{Z: 2}, m.Key.Data[4])
	assert.Equal(t, []uint32{4}, w.takeDamaged())
	assert.Empty(t, w.takeDamaged())
}
