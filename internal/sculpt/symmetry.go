package sculpt

import "github.com/Faultbox/midgard-sculpt/pkg/math"

// passOrder is the fixed pass order: base, single axes, pairs, triple.
var passOrder = [8]math.Axis{
	0,
	math.AxisX,
	math.AxisY,
	math.AxisZ,
	math.AxisX | math.AxisY,
	math.AxisX | math.AxisZ,
	math.AxisY | math.AxisZ,
	math.AxisX | math.AxisY | math.AxisZ,
}

// symmetryPasses returns the flips to run for the enabled axes,
// 2^k of them for k enabled axes.
func symmetryPasses(enabled math.Axis) []math.Axis {
	passes := make([]math.Axis, 0, 8)
	for _, flip := range passOrder {
		if enabled.Has(flip) {
			passes = append(passes, flip)
		}
	}
	return passes
}
