package main

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
	"github.com/Faultbox/midgard-sculpt/internal/mesh"
)

// logHost stands in for the editor: it keeps the undo history and logs
// dependency updates and redraw requests.
type logHost struct {
	log     *zap.Logger
	undo    []string
	flushes int
	redraws int
}

func (h *logHost) PushUndoSnapshot(label string) {
	h.undo = append(h.undo, label)
	h.log.Debug("undo push", zap.String("label", label), zap.Int("depth", len(h.undo)))
}

func (h *logHost) FlushDependencyUpdate(m *mesh.Mesh) {
	h.flushes++
	h.log.Debug("dependency update", zap.String("mesh", m.Name))
}

func (h *logHost) Redraw(damaged []viewport.Rect) {
	h.redraws++
	if damaged == nil {
		h.log.Debug("redraw", zap.Bool("full", true))
		return
	}
	h.log.Debug("redraw", zap.Int("rects", len(damaged)))
}
