package main

import (
	"context"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sculpt/internal/config"
	"github.com/Faultbox/midgard-sculpt/internal/engine/camera"
	"github.com/Faultbox/midgard-sculpt/internal/engine/texture"
	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/internal/logger"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
	"github.com/Faultbox/midgard-sculpt/internal/sculpt"
)

// replayer drives an engine through a script.
type replayer struct {
	eng  *sculpt.Engine
	mesh *mesh.Mesh
	cam  *camera.OrbitCamera
	vp   *viewport.Viewport
	host *logHost
	log  *zap.Logger
}

func newReplayer(cfg *config.Config, sc *Script) (*replayer, error) {
	settings, err := sculpt.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	m, err := sc.Mesh.build()
	if err != nil {
		return nil, err
	}

	cam := camera.NewOrbitCamera()
	cam.FovY = cfg.Viewport.FOVDegrees * math32.Pi / 180
	cam.Near, cam.Far = cfg.Viewport.Near, cfg.Viewport.Far
	cam.Orthographic = cfg.Viewport.Orthographic
	cam.OrthoScale = cfg.Viewport.OrthoScale
	if sc.Camera.Fit {
		b := m.Bounds()
		cam.FitToBounds(b.Min, b.Max)
	}
	cam.RotationY = sc.Camera.Yaw
	cam.RotationX = min(max(sc.Camera.Pitch, cam.MinPitch), cam.MaxPitch)

	r := &replayer{
		mesh: m,
		cam:  cam,
		vp:   viewport.New(cfg.Viewport.Width, cfg.Viewport.Height, cam, m),
		log:  logger.Named("replay"),
	}
	r.host = &logHost{log: r.log}
	r.eng = sculpt.NewEngine(settings, r.vp, r.host)
	if err := r.eng.SetMesh(m); err != nil {
		return nil, err
	}

	if cfg.Texture.Path != "" {
		tex, err := texture.Load(cfg.Texture.Path)
		if err != nil {
			return nil, err
		}
		r.eng.SetTexture(tex)
		r.log.Info("brush texture loaded",
			zap.String("path", cfg.Texture.Path),
			zap.Int("width", tex.W),
			zap.Int("height", tex.H))
	}

	r.log.Info("mesh ready",
		zap.String("mesh", m.Name),
		zap.Int("verts", len(m.Verts)),
		zap.Int("faces", len(m.Faces)))
	return r, nil
}

// run executes every step in order and stops at the first error.
func (r *replayer) run(ctx context.Context, steps []Step) error {
	for i, st := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch {
		case st.Stroke != nil:
			err = r.stroke(ctx, st.Stroke)
		case st.Hide != nil:
			err = r.hide(st.Hide)
		case st.Reveal:
			err = r.eng.RevealAll()
		case st.Orbit != nil:
			r.orbit(st.Orbit)
		}
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (r *replayer) stroke(ctx context.Context, st *StrokeStep) error {
	b := r.eng.Brush()
	if st.Kernel != "" {
		kind, err := sculpt.ParseKernelKind(st.Kernel)
		if err != nil {
			return err
		}
		b.Kind = kind
	}
	if st.Size > 0 {
		b.Size = st.Size
	}
	if st.Strength != nil {
		b.Strength = *st.Strength
	}
	b.Invert = st.Invert

	src := &scriptSource{}
	for _, p := range st.Points {
		ps, err := p.sample()
		if err != nil {
			return err
		}
		src.samples = append(src.samples, ps)
	}

	sess, err := r.eng.BeginStroke(b)
	if err != nil {
		return err
	}
	if err := sess.Run(ctx, src); err != nil {
		return err
	}

	stats := sess.Stats()
	r.log.Info("stroke replayed",
		zap.Stringer("kernel", b.Kind),
		zap.Int("samples", stats.Samples),
		zap.Int("applied", stats.Applied),
		zap.Int("passes", stats.Passes),
		zap.Int("damaged", stats.Damaged))
	return nil
}

func (r *replayer) hide(st *HideStep) error {
	mode, err := sculpt.ParseHideMode(st.Mode)
	if err != nil {
		return err
	}
	return r.eng.HideSelection(st.rect(), mode)
}

func (r *replayer) orbit(st *OrbitStep) {
	r.cam.HandleDrag(st.DX, st.DY)
	if st.Zoom != 0 {
		r.cam.HandleZoom(st.Zoom)
	}
	r.vp.Update()
	r.log.Debug("camera moved",
		zap.Float32("yaw", r.cam.RotationY),
		zap.Float32("pitch", r.cam.RotationX),
		zap.Float32("distance", r.cam.Distance))
}

// scriptSource hands out the samples of one stroke, then io.EOF.
type scriptSource struct {
	samples []sculpt.PointerSample
}

func (s *scriptSource) Next(ctx context.Context) (sculpt.PointerSample, error) {
	if err := ctx.Err(); err != nil {
		return sculpt.PointerSample{}, err
	}
	if len(s.samples) == 0 {
		return sculpt.PointerSample{}, io.EOF
	}
	ps := s.samples[0]
	s.samples = s.samples[1:]
	return ps, nil
}
