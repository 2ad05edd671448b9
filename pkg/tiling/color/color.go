// Package color maps rectangle dimensions to fill colors.
//
// Red grows with area relative to maxSide squared; green falls with width and
// blue falls with height, so small squares are cyan and large ones red.
package color

import (
	"fmt"
	"math"
)

// White is the fill used when colorization is off.
const White = "#ffffff"

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// For returns the color for a w x h rectangle. Signs are ignored. A
// non-positive maxSide yields white.
func For(w, h, maxSide float64) RGB {
	if maxSide <= 0 {
		return RGB{255, 255, 255}
	}
	w, h = math.Abs(w), math.Abs(h)
	return RGB{
		R: channel(255 * w * h / (maxSide * maxSide)),
		G: channel(255 - w*255/maxSide),
		B: channel(255 - h*255/maxSide),
	}
}

// Fill returns the hex fill for w x h, or White when colorize is false.
func Fill(w, h, maxSide float64, colorize bool) string {
	if !colorize {
		return White
	}
	return For(w, h, maxSide).Hex()
}

// channel rounds half up and clamps to [0, 255].
func channel(v float64) uint8 {
	r := math.Floor(v + 0.5)
	switch {
	case math.IsNaN(r) || r < 0:
		return 0
	case r > 255:
		return 255
	}
	return uint8(r)
}
