package config

import (
	"errors"
	"fmt"
)

// Validate checks value ranges. Enum names are checked by their consumers.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Viewport.Width > 0 && c.Viewport.Height > 0, "viewport: size %dx%d must be positive", c.Viewport.Width, c.Viewport.Height)
	check(c.Viewport.Near > 0 && c.Viewport.Far > c.Viewport.Near, "viewport: bad clip range %g..%g", c.Viewport.Near, c.Viewport.Far)
	check(c.Brush.Size > 0, "brush: size %d must be positive", c.Brush.Size)
	check(c.Brush.Strength >= 0 && c.Brush.Strength <= 100, "brush: strength %g outside 0..100", c.Brush.Strength)
	check(c.Brush.View >= 0 && c.Brush.View <= 10, "brush: view %d outside 0..10", c.Brush.View)
	check(c.Texture.CacheSize > 0, "texture: cache_size %d must be positive", c.Texture.CacheSize)
	check(c.Texture.Size > 0, "texture: size %g must be positive", c.Texture.Size)
	check(c.Mirror.Tolerance >= 0, "mirror: tolerance %g must not be negative", c.Mirror.Tolerance)
	check(c.Input.Averaging >= 1 && c.Input.Averaging <= 10, "input: averaging %d outside 1..10", c.Input.Averaging)
	check(c.Input.TabletSize >= 0 && c.Input.TabletSize <= 10, "input: tablet_size %d outside 0..10", c.Input.TabletSize)
	check(c.Input.TabletStrength >= 0 && c.Input.TabletStrength <= 10, "input: tablet_strength %d outside 0..10", c.Input.TabletStrength)
	check(c.Limits.MaxVertices > 0, "limits: max_vertices %d must be positive", c.Limits.MaxVertices)

	return errors.Join(errs...)
}
