package grid

import "fmt"

// Dim selects one of the two tracked dimensions of a cell.
type Dim int

const (
	Width Dim = iota
	Height
)

// Dims lists both dimensions in the order the propagation rules visit them.
var Dims = [...]Dim{Width, Height}

func (d Dim) String() string {
	if d == Height {
		return "height"
	}
	return "width"
}

// MarshalText encodes the dimension by name.
func (d Dim) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText accepts "width" or "height".
func (d *Dim) UnmarshalText(b []byte) error {
	switch string(b) {
	case "width":
		*d = Width
	case "height":
		*d = Height
	default:
		return fmt.Errorf("unknown dimension %q", b)
	}
	return nil
}

// Bounds are the absolute edges of a positioned rectangle.
type Bounds struct {
	Top, Right, Bottom, Left float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Cell is one grid position. Known flags are monotonic within a run: once a
// dimension is learned it is never reset or overwritten.
type Cell struct {
	Width, Height           float64
	WidthKnown, HeightKnown bool

	// Drawn is set once the cell has been emitted as a rectangle.
	Drawn bool
	// Discovered is set once the traversal has queued the cell.
	Discovered bool

	bounds Bounds
	placed bool
}

// Known reports whether dimension d has been seeded or inferred.
func (c *Cell) Known(d Dim) bool {
	if d == Height {
		return c.HeightKnown
	}
	return c.WidthKnown
}

// Value returns the stored value of dimension d. It is meaningful only when
// Known(d) is true.
func (c *Cell) Value(d Dim) float64 {
	if d == Height {
		return c.Height
	}
	return c.Width
}

// Learn records v for dimension d if it is not yet known and reports whether
// anything changed.
func (c *Cell) Learn(d Dim, v float64) bool {
	if c.Known(d) {
		return false
	}
	if d == Height {
		c.Height, c.HeightKnown = v, true
	} else {
		c.Width, c.WidthKnown = v, true
	}
	return true
}

// Complete reports whether both dimensions are known.
func (c *Cell) Complete() bool { return c.WidthKnown && c.HeightKnown }

// Drawable reports whether both dimensions are known and strictly positive.
func (c *Cell) Drawable() bool {
	return c.Complete() && c.Width > 0 && c.Height > 0
}

// Bounds returns the absolute edges and whether they have been assigned.
func (c *Cell) Bounds() (Bounds, bool) { return c.bounds, c.placed }

// Placed reports whether absolute edges have been assigned.
func (c *Cell) Placed() bool { return c.placed }

// Place assigns absolute edges.
func (c *Cell) Place(b Bounds) {
	c.bounds = b
	c.placed = true
}
