package sculpt

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sculpt/internal/engine/texture"
	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// BrushTexture is a brush mask sampled in [0, 1].
// *texture.Brush implements it.
type BrushTexture interface {
	Sample2D(u, v float32) float32
	Sample3D(p math.Vec3) float32
}

// modulator turns a vertex position into a texture and falloff weight.
type modulator struct {
	tex    BrushTexture
	cache  *texture.Brush
	repeat RepeatMode
	size   float32
	angle  float32 // Radians
	fade   bool
}

func newModulator(tex BrushTexture, cache *texture.Brush, ts TextureSettings, fade bool) *modulator {
	size := ts.Size
	if size <= 0 {
		size = 1
	}
	return &modulator{
		tex:    tex,
		cache:  cache,
		repeat: ts.Repeat,
		size:   size,
		angle:  ts.Angle * math32.Pi / 180,
		fade:   fade,
	}
}

// intensity returns the texture sample times the radial falloff at a
// vertex dist away from the brush center. screen is the vertex's
// projected position.
func (m *modulator) intensity(ed *EditData, pos math.Vec3, dist float32, screen viewport.ScreenPoint) float32 {
	avg := float32(1)
	if m.tex != nil {
		avg = m.sample(ed, pos, screen)
	}
	if m.fade && ed.Radius > 0 {
		avg *= falloff(dist, ed.Radius)
	}
	return min(max(avg, 0), 1)
}

func (m *modulator) sample(ed *EditData, pos math.Vec3, screen viewport.ScreenPoint) float32 {
	switch m.repeat {
	case Repeat3D:
		return m.tex.Sample3D(pos.Scale(1 / m.size))
	case RepeatTile:
		d := pos.Sub(ed.Center)
		local := math.Vec2{X: d.Dot(ed.Right), Y: -d.Dot(ed.Up)}.Rotate(m.angle)
		return m.cached(local.X/m.size, local.Y/m.size)
	default:
		size := float32(max(ed.SizePx, 1))
		local := math.Vec2{
			X: (float32(screen.X) - float32(ed.Mouse.X)) / (2 * size),
			Y: (float32(screen.Y) - float32(ed.Mouse.Y)) / (2 * size),
		}.Rotate(m.angle)
		return m.cached(local.X+0.5, local.Y+0.5)
	}
}

func (m *modulator) cached(u, v float32) float32 {
	if m.cache != nil {
		return m.cache.Sample2D(u, v)
	}
	return m.tex.Sample2D(u, v)
}

// falloff is the cosine falloff, 1 at the center and 0 at the rim.
func falloff(dist, radius float32) float32 {
	if dist >= radius {
		return 0
	}
	return 0.5 * (math32.Cos(math32.Pi*dist/radius) + 1)
}

// baseStrength is the signed overall strength of a kernel for one sample.
// pressure is the already scaled pressure factor.
func baseStrength(b Brush, sizePx int, invert bool, pressure float32) float32 {
	dir := float32(1)
	if invert {
		dir = -1
	}
	switch b.Kind {
	case KindDraw, KindInflate, KindLayer:
		return b.Strength / 100 * float32(sizePx) / 50 * dir * pressure
	case KindPinch:
		return b.Strength / 1000 * dir * pressure
	case KindSmooth, KindFlatten:
		return b.Strength / 100 * pressure
	default:
		return 1
	}
}

// pressureFactor scales a brush parameter by stylus pressure.
// influence is 0-10; the mouse always yields 1.
func pressureFactor(dev Device, pressure float32, influence int) float32 {
	if dev == DeviceMouse {
		return 1
	}
	f := float32(influence) / 10
	return (1 - f) + f*min(max(pressure, 0), 1)
}
