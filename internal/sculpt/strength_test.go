package sculpt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-sculpt/internal/engine/texture"
	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

func TestFalloff(t *testing.T) {
	assert.Equal(t, float32(1), falloff(0, 2))
	assert.InDelta(t, 0.5, falloff(1, 2), 1e-6)
	assert.Equal(t, float32(0), falloff(2, 2))
	assert.Equal(t, float32(0), falloff(3, 2))

	prev := float32(1)
	for d := float32(0); d < 2; d += 0.1 {
		f := falloff(d, 2)
		assert.LessOrEqual(t, f, prev)
		prev = f
	}
}

func TestIntensityWithoutTexture(t *testing.T) {
	ed := &EditData{Radius: 2}
	mod := newModulator(nil, nil, TextureSettings{}, false)
	assert.Equal(t, float32(1), mod.intensity(ed, math.Vec3{}, 1.5, viewport.ScreenPoint{}))

	mod.fade = true
	assert.InDelta(t, 0.5, mod.intensity(ed, math.Vec3{}, 1, viewport.ScreenPoint{}), 1e-6)
}

func TestIntensityDragCentersOnCursor(t *testing.T) {
	spy := &spyTexture{}
	ed := &EditData{Radius: 1, Mouse: viewport.ScreenPoint{X: 100, Y: 100}, SizePx: 50}
	mod := newModulator(spy, nil, TextureSettings{Repeat: RepeatDrag}, false)

	mod.intensity(ed, math.Vec3{}, 0, viewport.ScreenPoint{X: 100, Y: 100})
	mod.intensity(ed, math.Vec3{}, 0, viewport.ScreenPoint{X: 150, Y: 75})

	require.Len(t, spy.uv, 2)
	assert.InDelta(t, 0.5, spy.uv[0].X, 1e-6)
	assert.InDelta(t, 0.5, spy.uv[0].Y, 1e-6)
	assert.InDelta(t, 1, spy.uv[1].X, 1e-6, "brush rim maps to the texture edge")
	assert.InDelta(t, 0.25, spy.uv[1].Y, 1e-6)
}

func TestIntensityDragRotation(t *testing.T) {
	spy := &spyTexture{}
	ed := &EditData{Radius: 1, Mouse: viewport.ScreenPoint{X: 100, Y: 100}, SizePx: 50}
	mod := newModulator(spy, nil, TextureSettings{Repeat: RepeatDrag, Angle: 90}, false)

	mod.intensity(ed, math.Vec3{}, 0, viewport.ScreenPoint{X: 150, Y: 100})

	require.Len(t, spy.uv, 1)
	assert.InDelta(t, 0.5, spy.uv[0].X, 1e-6)
	assert.InDelta(t, 1, spy.uv[0].Y, 1e-6)
}

func TestIntensityTileWrapsInBrushFrame(t *testing.T) {
	spy := &spyTexture{}
	ed := &EditData{
		Radius: 5,
		Center: math.Vec3{X: 1, Y: 1},
		Right:  math.Vec3{X: 1},
		Up:     math.Vec3{Y: 1},
	}
	mod := newModulator(spy, nil, TextureSettings{Repeat: RepeatTile, Size: 2}, false)

	mod.intensity(ed, math.Vec3{X: 4, Y: 0}, 0, viewport.ScreenPoint{})

	require.Len(t, spy.uv, 1)
	assert.InDelta(t, 1.5, spy.uv[0].X, 1e-6)
	assert.InDelta(t, 0.5, spy.uv[0].Y, 1e-6)
}

func TestIntensity3DUsesWorldPosition(t *testing.T) {
	spy := &spyTexture{}
	mod := newModulator(spy, nil, TextureSettings{Repeat: Repeat3D, Size: 2}, false)

	mod.intensity(&EditData{Radius: 1}, math.Vec3{X: 2, Y: 4, Z: 6}, 0, viewport.ScreenPoint{})

	assert.Empty(t, spy.uv)
	assert.Equal(t, []math.Vec3{{X: 1, Y: 2, Z: 3}}, spy.xyz)
}

func TestIntensityUsesCache(t *testing.T) {
	spy := &spyTexture{}
	cache := &texture.Brush{W: 1, H: 1, Pix: []float32{0.25}}
	mod := newModulator(spy, cache, TextureSettings{Repeat: RepeatDrag}, false)

	got := mod.intensity(&EditData{Radius: 1, SizePx: 10}, math.Vec3{}, 0, viewport.ScreenPoint{})

	assert.Equal(t, float32(0.25), got)
	assert.Empty(t, spy.uv, "cached modes do not call the source")
}

func TestBaseStrength(t *testing.T) {
	b := Brush{Strength: 50}
	tests := []struct {
		kind   KernelKind
		invert bool
		want   float32
	}{
		{KindDraw, false, 0.5 * 100.0 / 50},
		{KindDraw, true, -0.5 * 100.0 / 50},
		{KindInflate, false, 1},
		{KindLayer, true, -1},
		{KindPinch, false, 0.05},
		{KindPinch, true, -0.05},
		{KindSmooth, true, 0.5},
		{KindFlatten, false, 0.5},
		{KindGrab, true, 1},
	}
	for _, tt := range tests {
		b.Kind = tt.kind
		assert.InDelta(t, tt.want, baseStrength(b, 100, tt.invert, 1), 1e-6, "%s invert=%v", tt.kind, tt.invert)
	}
	b.Kind = KindSmooth
	assert.InDelta(t, 0.25, baseStrength(b, 100, false, 0.5), 1e-6)
}

func TestPressureFactor(t *testing.T) {
	assert.Equal(t, float32(1), pressureFactor(DeviceMouse, 0, 10))
	assert.InDelta(t, 0.5, pressureFactor(DeviceStylus, 0.5, 10), 1e-6)
	assert.InDelta(t, 0.85, pressureFactor(DeviceStylus, 0.5, 3), 1e-6)
	assert.Equal(t, float32(1), pressureFactor(DeviceEraser, 0.2, 0))
	assert.InDelta(t, 1, pressureFactor(DeviceStylus, 3, 10), 1e-6, "pressure is clamped")
}
