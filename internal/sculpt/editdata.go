package sculpt

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// EditData is the brush geometry of one symmetry pass of one sample.
type EditData struct {
	Center math.Vec3
	Radius float32

	// Flip holds the mirrored axes of this pass.
	Flip   math.Axis
	Mirror Mirror

	// View basis at the brush center. Out points toward the viewer.
	Up, Right, Out math.Vec3

	Invert bool

	// Mouse is the brush center in window pixels and SizePx the brush
	// radius in pixels.
	Mouse  viewport.ScreenPoint
	SizePx int
}

// newEditData derives the brush geometry under mouse at the given depth.
func newEditData(vp Viewport, mouse viewport.ScreenPoint, depth float32, sizePx int) EditData {
	center := vp.Unproject(mouse, depth)
	rim := vp.Unproject(mouse.Offset(sizePx, 0), depth)

	// Window Y grows downward, so one pixel up is Y-1.
	right := vp.Unproject(mouse.Offset(1, 0), depth).Sub(center).Normalize()
	up := vp.Unproject(mouse.Offset(0, -1), depth).Sub(center).Normalize()
	out := vp.Unproject(mouse, 0).Sub(vp.Unproject(mouse, 1)).Normalize()

	return EditData{
		Center: center,
		Radius: center.Distance(rim),
		Up:     up,
		Right:  right,
		Out:    out,
		Mouse:  mouse,
		SizePx: sizePx,
	}
}

// flipped returns a copy mirrored across the given axes, with Mouse
// re-projected from the mirrored center.
func (e EditData) flipped(axes math.Axis, vp Viewport) EditData {
	if axes == 0 {
		return e
	}
	e.Flip = axes
	e.Center = e.Center.Flip(axes)
	e.Up = e.Up.Flip(axes)
	e.Right = e.Right.Flip(axes)
	e.Out = e.Out.Flip(axes)
	e.Mouse = vp.Project(e.Center)
	return e
}

// clip snaps the mirrored axes of val to zero where the pre-move
// coordinate was within tolerance of zero.
func (e *EditData) clip(orig, val math.Vec3) math.Vec3 {
	if e.Mirror.Clip == 0 {
		return val
	}
	for i, axis := range [3]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		if e.Mirror.Clip.Has(axis) && math32.Abs(orig.At(i)) <= e.Mirror.Tolerance {
			val = val.With(i, 0)
		}
	}
	return val
}
