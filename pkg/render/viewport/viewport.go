// Package viewport fits tiling coordinates onto a square pixel canvas.
//
// Tiling coordinates grow upward; canvas coordinates grow downward. A frame
// keeps a fixed padding on every side and scales uniformly so the tiling's
// bounding box fits the remaining area.
package viewport

import (
	"math"

	"github.com/matzehuels/rectile/pkg/tiling"
)

// Padding is the margin in pixels around the fitted tiling.
const Padding = 30.0

// Bounds is the bounding box of a set of rectangles in tiling coordinates.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Frame maps tiling coordinates to canvas pixels.
type Frame struct {
	Size    int
	Padding float64
	Scale   float64
	Bounds  Bounds
}

// Box is a rectangle in canvas pixels with a top-left origin.
type Box struct {
	X, Y, Width, Height float64
}

// Center returns the box midpoint.
func (b Box) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Measure returns the bounding box of rects. It is the zero Bounds when rects
// is empty.
func Measure(rects []tiling.Rectangle) Bounds {
	if len(rects) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, r := range rects {
		b.MinX = math.Min(b.MinX, r.Left)
		b.MaxX = math.Max(b.MaxX, r.Right)
		b.MinY = math.Min(b.MinY, r.Bottom)
		b.MaxY = math.Max(b.MaxY, r.Top)
	}
	return b
}

// Fit returns the frame that places rects on a canvasSize x canvasSize canvas.
// A degenerate extent counts as 1 so the scale stays finite.
func Fit(rects []tiling.Rectangle, canvasSize int) Frame {
	b := Measure(rects)
	inner := math.Max(1, float64(canvasSize)-2*Padding)

	w := b.MaxX - b.MinX
	if w == 0 {
		w = 1
	}
	h := b.MaxY - b.MinY
	if h == 0 {
		h = 1
	}

	return Frame{
		Size:    canvasSize,
		Padding: Padding,
		Scale:   math.Min(inner/w, inner/h),
		Bounds:  b,
	}
}

// Place converts r to canvas pixels.
func (f Frame) Place(r tiling.Rectangle) Box {
	return Box{
		X:      f.Padding + (r.Left-f.Bounds.MinX)*f.Scale,
		Y:      f.Padding + (f.Bounds.MaxY-r.Top)*f.Scale,
		Width:  (r.Right - r.Left) * f.Scale,
		Height: (r.Top - r.Bottom) * f.Scale,
	}
}
