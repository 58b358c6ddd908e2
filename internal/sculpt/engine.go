// Package sculpt turns pointer strokes into mesh deformations.
//
// An Engine holds the brush settings and per-mesh caches. BeginStroke
// returns a Session that consumes pointer samples until End. Each sample
// runs one pass per symmetry flip: select the vertices under the brush,
// weight them by texture and falloff, then apply the brush kernel.
package sculpt

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sculpt/internal/engine/texture"
	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/internal/logger"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// Undo labels for partial hiding.
const (
	LabelHide   = "Partial mesh hide"
	LabelReveal = "Partial mesh reveal"
)

// Host receives the side effects of sculpting.
type Host interface {
	PushUndoSnapshot(label string)
	FlushDependencyUpdate(m *mesh.Mesh)
	// Redraw receives the damaged rectangles of a sample, or nil when
	// the whole view needs redrawing.
	Redraw(damaged []viewport.Rect)
}

type nopHost struct{}

func (nopHost) PushUndoSnapshot(string)          {}
func (nopHost) FlushDependencyUpdate(*mesh.Mesh) {}
func (nopHost) Redraw([]viewport.Rect)           {}

// Engine sculpts one active mesh at a time.
type Engine struct {
	settings Settings
	vp       Viewport
	host     Host
	log      *zap.Logger

	mesh  *mesh.Mesh
	users *VertexUsers
	proj  Projection

	tex   BrushTexture
	cache *texture.Brush

	hidden *HiddenState
	active *Session
}

// NewEngine creates an engine. A nil host discards all side effects.
func NewEngine(settings Settings, vp Viewport, host Host) *Engine {
	if host == nil {
		host = nopHost{}
	}
	return &Engine{
		settings: settings,
		vp:       vp,
		host:     host,
		log:      logger.Named("sculpt"),
	}
}

// SetLogger replaces the engine logger.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.log = l
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Brush returns the configured brush.
func (e *Engine) Brush() Brush {
	return e.settings.Brush
}

// Mesh returns the active mesh.
func (e *Engine) Mesh() *mesh.Mesh {
	return e.mesh
}

// Hidden returns the partial hide state, nil when everything is visible.
func (e *Engine) Hidden() *HiddenState {
	return e.hidden
}

// SetMesh makes m the active mesh. Anything hidden on the previous mesh
// is revealed first.
func (e *Engine) SetMesh(m *mesh.Mesh) error {
	if e.active != nil {
		return ErrStrokeActive
	}
	if m == e.mesh {
		return nil
	}
	if err := e.RevealAll(); err != nil {
		return err
	}
	e.mesh = m
	e.users = nil
	return nil
}

// SetTexture sets the brush texture. nil removes it.
func (e *Engine) SetTexture(t BrushTexture) {
	e.tex = t
	e.cache = nil
}

// SetBrushKernel selects the kernel for the next stroke.
func (e *Engine) SetBrushKernel(kind KernelKind) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKernel, kind)
	}
	e.settings.Brush.Kind = kind
	return nil
}

// SetBrushSize sets the brush radius in pixels.
func (e *Engine) SetBrushSize(px int) error {
	if px <= 0 {
		return fmt.Errorf("sculpt: brush size %d must be positive", px)
	}
	e.settings.Brush.Size = px
	return nil
}

// SetBrushStrength sets the brush strength in percent.
func (e *Engine) SetBrushStrength(pct float32) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("sculpt: brush strength %g outside 0..100", pct)
	}
	e.settings.Brush.Strength = pct
	return nil
}

// SetSymmetryAxes sets the mirrored stroke axes.
func (e *Engine) SetSymmetryAxes(a math.Axis) {
	e.settings.Symmetry = a & (math.AxisX | math.AxisY | math.AxisZ)
}

// vertexUsers returns the adjacency index of the active mesh, rebuilding
// it when the topology changed.
func (e *Engine) vertexUsers() *VertexUsers {
	if e.users == nil || e.users.Stale(e.mesh) {
		e.users = BuildVertexUsers(e.mesh)
		e.log.Debug("vertex users rebuilt",
			zap.Int("verts", len(e.mesh.Verts)),
			zap.Int("faces", len(e.mesh.Faces)))
	}
	return e.users
}

// textureCache bakes the 2D brush texture for Drag and Tile mapping.
func (e *Engine) textureCache() *texture.Brush {
	if e.tex == nil || e.settings.Texture.Repeat == Repeat3D {
		return nil
	}
	size := max(e.settings.Texture.CacheSize, 1)
	if e.cache == nil || e.cache.W != size {
		e.cache = texture.Bake(e.tex, size)
		e.log.Debug("brush texture cached", zap.Int("size", size))
	}
	return e.cache
}

// checkMesh validates the active mesh for sculpting.
func (e *Engine) checkMesh() error {
	m := e.mesh
	switch {
	case m == nil:
		return ErrNoMesh
	case m.ReadOnly:
		return fmt.Errorf("mesh %q: %w", m.Name, ErrReadOnlyMesh)
	case len(m.Faces) == 0:
		return fmt.Errorf("mesh %q: %w", m.Name, ErrNoFaces)
	case m.Key != nil && !m.Key.Locked:
		return fmt.Errorf("mesh %q key %q: %w", m.Name, m.Key.Name, ErrUnlockedKeyShape)
	case m.Key != nil && len(m.Key.Data) != len(m.Verts):
		return fmt.Errorf("mesh %q key %q has %d points for %d vertices: %w",
			m.Name, m.Key.Name, len(m.Key.Data), len(m.Verts), ErrKeyShapeMismatch)
	case e.settings.MaxVertices > 0 && len(m.Verts) > e.settings.MaxVertices:
		return fmt.Errorf("mesh %q has %d vertices, limit %d: %w",
			m.Name, len(m.Verts), e.settings.MaxVertices, ErrResourceExhausted)
	}
	return nil
}

// HideSelection hides the part of the mesh on the mode's side of rect.
// Anything hidden before stays hidden.
func (e *Engine) HideSelection(rect viewport.Rect, mode HideMode) error {
	if e.active != nil {
		return ErrStrokeActive
	}
	if e.mesh == nil {
		return ErrNoMesh
	}
	if e.mesh.ReadOnly {
		return fmt.Errorf("mesh %q: %w", e.mesh.Name, ErrReadOnlyMesh)
	}

	prev := e.hidden
	if prev != nil && !prev.revert(e.mesh) {
		return fmt.Errorf("mesh %q: %w", e.mesh.Name, ErrHiddenMismatch)
	}
	e.hidden = hideVertices(e.mesh, e.vp, rect, mode, prev)
	e.users = nil

	shown := len(e.mesh.Verts)
	if e.hidden != nil {
		shown = e.hidden.Shown
	}
	e.log.Info("partial hide",
		zap.String("mesh", e.mesh.Name),
		zap.Stringer("mode", mode),
		zap.Int("shown", shown),
		zap.Int("faces", len(e.mesh.Faces)))

	e.host.PushUndoSnapshot(LabelHide)
	e.host.FlushDependencyUpdate(e.mesh)
	e.host.Redraw(nil)
	return nil
}

// RevealAll restores everything hidden by HideSelection.
// It does nothing when nothing is hidden.
func (e *Engine) RevealAll() error {
	if e.hidden == nil || e.mesh == nil {
		return nil
	}
	if e.active != nil {
		return ErrStrokeActive
	}
	if !e.hidden.revert(e.mesh) {
		return fmt.Errorf("mesh %q: %w", e.mesh.Name, ErrHiddenMismatch)
	}
	e.hidden = nil
	e.users = nil
	e.log.Info("partial reveal", zap.String("mesh", e.mesh.Name), zap.Int("verts", len(e.mesh.Verts)))

	e.host.PushUndoSnapshot(LabelReveal)
	e.host.FlushDependencyUpdate(e.mesh)
	e.host.Redraw(nil)
	return nil
}
