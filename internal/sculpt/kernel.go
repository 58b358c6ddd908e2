package sculpt

import (
	"slices"

	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// Kernel is one of Draw, Smooth, Pinch, Inflate, Grab, Layer or Flatten.
type Kernel interface {
	Kind() KernelKind
	sealed()
}

// Draw moves vertices along the area normal.
type Draw struct{}

// Smooth moves vertices toward the average of their neighbors.
type Smooth struct{}

// Pinch pulls vertices toward the brush center.
type Pinch struct{}

// Inflate moves vertices along their own normals.
type Inflate struct{}

// Grab drags the vertices captured at the first sample.
type Grab struct {
	State *GrabState
}

// Layer raises vertices to a fixed height above their stroke-start position.
type Layer struct {
	State *LayerState
}

// Flatten pulls vertices onto the plane through the brush rim.
type Flatten struct{}

func (Draw) Kind() KernelKind    { return KindDraw }
func (Smooth) Kind() KernelKind  { return KindSmooth }
func (Pinch) Kind() KernelKind   { return KindPinch }
func (Inflate) Kind() KernelKind { return KindInflate }
func (Grab) Kind() KernelKind    { return KindGrab }
func (Layer) Kind() KernelKind   { return KindLayer }
func (Flatten) Kind() KernelKind { return KindFlatten }

func (Draw) sealed()    {}
func (Smooth) sealed()  {}
func (Pinch) sealed()   {}
func (Inflate) sealed() {}
func (Grab) sealed()    {}
func (Layer) sealed()   {}
func (Flatten) sealed() {}

// GrabState holds the grab selection of each symmetry pass for a stroke.
type GrabState struct {
	// Depth is fixed at the first sample.
	Depth float32
	// Active is indexed by the pass flip axes.
	Active   [8][]ActiveVertex
	Captured bool
	// Delta is the unmirrored displacement of the last sample.
	Delta math.Vec3
}

// LayerState holds per-vertex layer heights and the stroke-start positions.
type LayerState struct {
	Disp []float32
	Orig []math.Vec3
}

func newLayerState(m *mesh.Mesh) *LayerState {
	st := &LayerState{Disp: make([]float32, len(m.Verts)), Orig: make([]math.Vec3, len(m.Verts))}
	for i, v := range m.Verts {
		st.Orig[i] = v.Position
	}
	return st
}

func newKernel(kind KernelKind, m *mesh.Mesh) (Kernel, error) {
	switch kind {
	case KindDraw:
		return Draw{}, nil
	case KindSmooth:
		return Smooth{}, nil
	case KindPinch:
		return Pinch{}, nil
	case KindInflate:
		return Inflate{}, nil
	case KindGrab:
		return Grab{State: &GrabState{}}, nil
	case KindLayer:
		return Layer{State: newLayerState(m)}, nil
	case KindFlatten:
		return Flatten{}, nil
	default:
		return nil, ErrUnknownKernel
	}
}

// flattenSamples is the number of rim vertices averaged for the Flatten plane.
const flattenSamples = 10

// writer applies clipped position writes and tracks damaged vertices.
type writer struct {
	m *mesh.Mesh

	// keyData receives the same writes when a locked key shape is active.
	keyData []math.Vec3

	damaged []bool
	list    []uint32
}

func newWriter(m *mesh.Mesh) *writer {
	w := &writer{m: m, damaged: make([]bool, len(m.Verts))}
	if m.Key != nil && m.Key.Locked {
		w.keyData = m.Key.Data
	}
	return w
}

func (w *writer) set(ed *EditData, i uint32, val math.Vec3) {
	v := &w.m.Verts[i]
	val = ed.clip(v.Position, val)
	v.Position = val
	if w.keyData != nil {
		w.keyData[i] = val
	}
	if !w.damaged[i] {
		w.damaged[i] = true
		w.list = append(w.list, i)
	}
}

// takeDamaged returns and clears the vertices written since the last call.
// The result is only valid until the next write.
func (w *writer) takeDamaged() []uint32 {
	list := w.list
	for _, i := range list {
		w.damaged[i] = false
	}
	w.list = w.list[:0]
	return list
}

// kernelContext carries what a kernel needs beyond the active set.
type kernelContext struct {
	w     *writer
	users *VertexUsers
	view  float32 // 0-1
	bstr  float32

	scratch []uint32
	targets []math.Vec3
}

// apply runs kernel k for one pass.
func (kc *kernelContext) apply(k Kernel, ed *EditData, active []ActiveVertex) {
	if len(active) == 0 {
		return
	}
	switch k := k.(type) {
	case Draw:
		kc.draw(ed, active)
	case Smooth:
		kc.smooth(ed, active)
	case Pinch:
		kc.pinch(ed, active)
	case Inflate:
		kc.inflate(ed, active)
	case Grab:
		kc.grab(ed, active, k.State.Delta.Flip(ed.Flip))
	case Layer:
		kc.layer(ed, active, k.State)
	case Flatten:
		kc.flatten(ed, active)
	}
}

// areaNormal is the normalized sum of the active vertex normals blended
// toward ed.Out by the view factor.
func (kc *kernelContext) areaNormal(ed *EditData, active []ActiveVertex) math.Vec3 {
	var sum math.Vec3
	for _, a := range active {
		sum = sum.Add(kc.w.m.Verts[a.Index].Normal)
	}
	n := sum.Normalize()
	if kc.view > 0 {
		n = n.Scale(1 - kc.view).Add(ed.Out.Scale(kc.view)).Normalize()
	}
	return n
}

func (kc *kernelContext) draw(ed *EditData, active []ActiveVertex) {
	n := kc.areaNormal(ed, active)
	verts := kc.w.m.Verts
	for _, a := range active {
		kc.w.set(ed, a.Index, verts[a.Index].Position.Add(n.Scale(a.Fade)))
	}
}

// smooth computes every target from the positions at the start of the
// pass before writing any of them.
func (kc *kernelContext) smooth(ed *EditData, active []ActiveVertex) {
	m := kc.w.m
	kc.targets = kc.targets[:0]
	for _, a := range active {
		p := m.Verts[a.Index].Position
		kc.scratch = kc.users.Neighbors(m, a.Index, kc.scratch[:0])
		if len(kc.scratch) == 0 {
			kc.targets = append(kc.targets, p)
			continue
		}
		var avg math.Vec3
		for _, nb := range kc.scratch {
			avg = avg.Add(m.Verts[nb].Position)
		}
		avg = avg.Scale(1 / float32(len(kc.scratch)))
		kc.targets = append(kc.targets, p.Add(avg.Sub(p).Scale(a.Fade)))
	}
	for i, a := range active {
		kc.w.set(ed, a.Index, kc.targets[i])
	}
}

func (kc *kernelContext) pinch(ed *EditData, active []ActiveVertex) {
	verts := kc.w.m.Verts
	for _, a := range active {
		p := verts[a.Index].Position
		kc.w.set(ed, a.Index, p.Add(ed.Center.Sub(p).Scale(a.Fade)))
	}
}

func (kc *kernelContext) inflate(ed *EditData, active []ActiveVertex) {
	verts := kc.w.m.Verts
	for _, a := range active {
		v := verts[a.Index]
		kc.w.set(ed, a.Index, v.Position.Add(v.Normal.Scale(a.Fade)))
	}
}

func (kc *kernelContext) grab(ed *EditData, active []ActiveVertex, delta math.Vec3) {
	verts := kc.w.m.Verts
	for _, a := range active {
		kc.w.set(ed, a.Index, verts[a.Index].Position.Add(delta.Scale(a.Fade)))
	}
}

// layer grows each vertex's displacement toward bstr without passing it.
func (kc *kernelContext) layer(ed *EditData, active []ActiveVertex, st *LayerState) {
	n := kc.areaNormal(ed, active)
	bstr := kc.bstr
	for _, a := range active {
		disp := &st.Disp[a.Index]
		if (bstr > 0 && *disp < bstr) || (bstr < 0 && *disp > bstr) {
			*disp += a.Fade
			if bstr < 0 {
				*disp = max(*disp, bstr)
			} else {
				*disp = min(*disp, bstr)
			}
			kc.w.set(ed, a.Index, st.Orig[a.Index].Add(n.Scale(*disp)))
		}
	}
}

func (kc *kernelContext) flatten(ed *EditData, active []ActiveVertex) {
	n := kc.areaNormal(ed, active)
	verts := kc.w.m.Verts

	rim := slices.Clone(active)
	slices.SortStableFunc(rim, func(a, b ActiveVertex) int {
		switch {
		case a.Dist > b.Dist:
			return -1
		case a.Dist < b.Dist:
			return 1
		default:
			return 0
		}
	})
	rim = rim[:min(len(rim), flattenSamples)]

	var center math.Vec3
	for _, a := range rim {
		center = center.Add(verts[a.Index].Position)
	}
	center = center.Scale(1 / float32(len(rim)))

	for _, a := range active {
		p := verts[a.Index].Position
		onPlane := p.Sub(n.Scale(p.Sub(center).Dot(n)))
		kc.w.set(ed, a.Index, p.Add(onPlane.Sub(p).Scale(a.Fade)))
	}
}
