package sculpt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/pkg/math"
)

// Stats counts the work done by a stroke.
type Stats struct {
	Samples int // Samples received
	Applied int // Samples that ran the kernel
	Passes  int // Symmetry passes run
	Damaged int // Distinct vertices written
}

// Session is one stroke, from pointer down to pointer up.
type Session struct {
	eng    *Engine
	m      *mesh.Mesh
	brush  Brush
	kernel Kernel
	mod    *modulator
	filter *pointerFilter
	passes []math.Axis

	w       *writer
	kc      kernelContext
	touched []bool

	// Scratch reused between samples.
	active []ActiveVertex
	eds    []EditData
	rects  []viewport.Rect

	last    viewport.ScreenPoint
	started bool
	done    bool
	stats   Stats
}

// BeginStroke starts a stroke with brush b on the active mesh.
// A refused stroke leaves the mesh and the engine unchanged.
func (e *Engine) BeginStroke(b Brush) (*Session, error) {
	if e.active != nil {
		return nil, ErrStrokeActive
	}
	err := e.checkMesh()
	if err == nil {
		err = b.validate()
	}
	if err != nil {
		e.log.Warn("stroke refused", zap.Stringer("kernel", b.Kind), zap.Error(err))
		return nil, err
	}

	m := e.mesh
	kernel, err := newKernel(b.Kind, m)
	if err != nil {
		return nil, err
	}
	users := e.vertexUsers()

	s := &Session{
		eng:     e,
		m:       m,
		brush:   b,
		kernel:  kernel,
		mod:     newModulator(e.tex, e.textureCache(), e.settings.Texture, b.Fade),
		filter:  newPointerFilter(e.settings.Averaging),
		passes:  symmetryPasses(e.settings.Symmetry),
		w:       newWriter(m),
		touched: make([]bool, len(m.Verts)),
	}
	s.kc = kernelContext{w: s.w, users: users, view: float32(b.View) / 10}
	e.active = s

	e.log.Info("stroke begin",
		zap.String("mesh", m.Name),
		zap.Stringer("kernel", b.Kind),
		zap.Int("size", b.Size),
		zap.Float32("strength", b.Strength),
		zap.Stringer("symmetry", e.settings.Symmetry),
		zap.Int("verts", len(m.Verts)))
	return s, nil
}

// Kernel returns the stroke kernel.
func (s *Session) Kernel() Kernel {
	return s.kernel
}

// Stats returns the work done so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// OnPointerSample applies the brush at one pointer sample. The Held
// flag is not inspected; call End when the button is released.
func (s *Session) OnPointerSample(ps PointerSample) error {
	if s.done {
		return ErrNoStroke
	}
	if s.kc.users.Stale(s.m) {
		return s.abort("topology changed")
	}
	s.stats.Samples++

	mouse := s.filter.push(ps.Pos)
	if s.started && !s.brush.Airbrush && mouse == s.last {
		return nil
	}

	cfg := &s.eng.settings
	vp := s.eng.vp
	invert := s.brush.Invert != (ps.Device == DeviceEraser)
	sizePx := max(int(math32.Floor(float32(s.brush.Size)*pressureFactor(ps.Device, ps.Pressure, cfg.TabletSize)+0.5)), 1)
	s.kc.bstr = baseStrength(s.brush, sizePx, invert, pressureFactor(ps.Device, ps.Pressure, cfg.TabletStrength))

	grab, isGrab := s.kernel.(Grab)
	var depth float32
	switch {
	case isGrab && grab.State.Captured:
		depth = grab.State.Depth
		grab.State.Delta = vp.Unproject(mouse, depth).Sub(vp.Unproject(s.last, depth))
	default:
		depth = vp.SampleDepth(mouse)
		if isGrab {
			grab.State.Depth = depth
		}
	}

	base := newEditData(vp, mouse, depth, sizePx)
	base.Mirror = cfg.Mirror
	base.Invert = invert

	// Every pass rectangle is marked before any pass moves a vertex.
	proj := &s.eng.proj
	proj.Refresh(s.m, vp)
	s.eds = s.eds[:0]
	for _, flip := range s.passes {
		ed := base.flipped(flip, vp)
		s.eds = append(s.eds, ed)
		proj.MarkRegion(viewport.RectAround(ed.Mouse, sizePx))
	}

	s.rects = s.rects[:0]
	for i := range s.eds {
		ed := &s.eds[i]
		var active []ActiveVertex
		if isGrab {
			if !grab.State.Captured {
				grab.State.Active[ed.Flip] = selectActive(s.m, proj, ed, s.mod, s.kc.bstr, nil)
			}
			active = grab.State.Active[ed.Flip]
		} else {
			s.active = selectActive(s.m, proj, ed, s.mod, s.kc.bstr, s.active[:0])
			active = s.active
		}
		s.kc.apply(s.kernel, ed, active)
		s.rects = append(s.rects, viewport.RectAround(ed.Mouse, sizePx))
	}
	if isGrab {
		grab.State.Captured = true
	}

	damaged := s.updateNormals()
	if cfg.DrawFast {
		s.eng.host.Redraw(s.rects)
	} else {
		s.eng.host.Redraw(nil)
	}

	s.last = mouse
	s.started = true
	s.stats.Applied++
	s.stats.Passes += len(s.eds)

	s.eng.log.Debug("sample",
		zap.Int16("x", mouse.X),
		zap.Int16("y", mouse.Y),
		zap.Float32("depth", depth),
		zap.Float32("radius", base.Radius),
		zap.Int("passes", len(s.eds)),
		zap.Int("damaged", damaged))
	return nil
}

// updateNormals recomputes the normals of the vertices written by the
// last sample and returns how many there were.
func (s *Session) updateNormals() int {
	list := s.w.takeDamaged()
	for _, i := range list {
		if !s.touched[i] {
			s.touched[i] = true
			s.stats.Damaged++
		}
		s.m.Verts[i].Normal = s.kc.users.VertexNormal(s.m, i)
	}
	return len(list)
}

// End finishes the stroke: normals of every written vertex are
// recomputed, the undo snapshot is pushed and stroke state is released.
func (s *Session) End() error {
	if s.done {
		return ErrNoStroke
	}
	for i, t := range s.touched {
		if t {
			s.m.Verts[i].Normal = s.kc.users.VertexNormal(s.m, uint32(i))
		}
	}
	s.finish()
	s.eng.host.Redraw(nil)

	s.eng.log.Info("stroke end",
		zap.String("mesh", s.m.Name),
		zap.Stringer("kernel", s.brush.Kind),
		zap.Int("samples", s.stats.Samples),
		zap.Int("applied", s.stats.Applied),
		zap.Int("passes", s.stats.Passes),
		zap.Int("damaged", s.stats.Damaged))
	return nil
}

// abort ends the stroke without touching normals. Samples already
// applied stay and are still pushed to undo.
func (s *Session) abort(reason string) error {
	s.finish()
	s.eng.users = nil
	s.eng.log.Warn("stroke aborted",
		zap.String("mesh", s.m.Name),
		zap.String("reason", reason),
		zap.Int("applied", s.stats.Applied))
	return fmt.Errorf("%w: %s", ErrStrokeAborted, reason)
}

func (s *Session) finish() {
	s.eng.host.PushUndoSnapshot(s.brush.Kind.UndoLabel())
	s.eng.host.FlushDependencyUpdate(s.m)
	s.kernel = nil
	s.kc.targets = nil
	s.done = true
	s.eng.active = nil
}

// Run feeds samples from src until the button is released, the source is
// exhausted or ctx is cancelled, then ends the stroke.
func (s *Session) Run(ctx context.Context, src PointerSource) error {
	for {
		ps, err := src.Next(ctx)
		if err != nil {
			endErr := s.End()
			if errors.Is(err, io.EOF) {
				return endErr
			}
			return errors.Join(err, endErr)
		}
		if !ps.Held {
			return s.End()
		}
		if err := s.OnPointerSample(ps); err != nil {
			return err
		}
	}
}
