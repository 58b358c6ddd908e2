package sculpt

import (
	"context"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sculpt/internal/engine/viewport"
)

// Device identifies the input device of a pointer sample.
type Device uint8

const (
	DeviceMouse Device = iota
	DeviceStylus
	DeviceEraser
)

func (d Device) String() string {
	switch d {
	case DeviceStylus:
		return "stylus"
	case DeviceEraser:
		return "eraser"
	default:
		return "mouse"
	}
}

// PointerSample is one reading of the pointer while sculpting.
type PointerSample struct {
	Pos      viewport.ScreenPoint
	Pressure float32 // 0-1, ignored for the mouse
	Device   Device
	Held     bool
}

// PointerSource delivers pointer samples. Next blocks until a sample is
// available and returns io.EOF when the source is exhausted.
type PointerSource interface {
	Next(ctx context.Context) (PointerSample, error)
}

// pointerFilter averages the last n pointer positions.
type pointerFilter struct {
	ring  []viewport.ScreenPoint
	next  int
	count int
}

func newPointerFilter(n int) *pointerFilter {
	return &pointerFilter{ring: make([]viewport.ScreenPoint, max(n, 1))}
}

// push adds p and returns the rounded average of the buffered positions.
func (f *pointerFilter) push(p viewport.ScreenPoint) viewport.ScreenPoint {
	f.ring[f.next] = p
	f.next = (f.next + 1) % len(f.ring)
	f.count = min(f.count+1, len(f.ring))

	var sx, sy int
	for i := range f.count {
		sx += int(f.ring[i].X)
		sy += int(f.ring[i].Y)
	}
	n := float32(f.count)
	return viewport.ScreenPoint{
		X: int16(math32.Floor(float32(sx)/n + 0.5)),
		Y: int16(math32.Floor(float32(sy)/n + 0.5)),
	}
}
