package sculpt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-sculpt/internal/config"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

func TestKernelKindNames(t *testing.T) {
	labels := map[KernelKind]string{
		KindDraw:    "Draw Brush",
		KindSmooth:  "Smooth Brush",
		KindPinch:   "Pinch Brush",
		KindInflate: "Inflate Brush",
		KindGrab:    "Grab Brush",
		KindLayer:   "Layer Brush",
		KindFlatten: "Flatten Brush",
	}
	for kind, label := range labels {
		assert.Equal(t, label, kind.UndoLabel())

		parsed, err := ParseKernelKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)

		if kind == KindLayer {
			continue
		}
		k, err := newKernel(kind, nil)
		require.NoError(t, err)
		assert.Equal(t, kind, k.Kind())
	}

	k, err := ParseKernelKind("FLATTEN")
	require.NoError(t, err)
	assert.Equal(t, KindFlatten, k)

	_, err = ParseKernelKind("clay")
	assert.ErrorIs(t, err, ErrUnknownKernel)
	assert.Equal(t, "kernel(12)", KernelKind(12).String())
}

func TestParseRepeatMode(t *testing.T) {
	for _, mode := range []RepeatMode{RepeatDrag, RepeatTile, Repeat3D} {
		got, err := ParseRepeatMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseRepeatMode("spiral")
	assert.Error(t, err)
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Brush.Kernel = "grab"
	cfg.Texture.Repeat = "3d"
	cfg.Symmetry = config.SymmetryConfig{X: true, Z: true}
	cfg.Mirror = config.MirrorConfig{ClipY: true, Tolerance: 0.02}
	cfg.Input.Averaging = 3

	s, err := SettingsFromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, KindGrab, s.Brush.Kind)
	assert.Equal(t, Repeat3D, s.Texture.Repeat)
	assert.Equal(t, math.AxisX|math.AxisZ, s.Symmetry)
	assert.Equal(t, Mirror{Clip: math.AxisY, Tolerance: 0.02}, s.Mirror)
	assert.Equal(t, 3, s.Averaging)
	assert.Equal(t, cfg.Brush.Size, s.Brush.Size)
	assert.True(t, s.DrawFast)
}

func TestSettingsFromConfigErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Brush.Kernel = "clay"
	_, err := SettingsFromConfig(cfg)
	assert.ErrorIs(t, err, ErrUnknownKernel)

	cfg = config.Default()
	cfg.Texture.Repeat = "spiral"
	_, err = SettingsFromConfig(cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Brush.Strength = 300
	_, err = SettingsFromConfig(cfg)
	assert.Error(t, err)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, KindDraw, s.Brush.Kind)
	assert.Equal(t, math.Axis(0), s.Symmetry)
	assert.NoError(t, s.Brush.validate())
}
