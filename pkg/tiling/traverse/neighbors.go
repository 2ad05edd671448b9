package traverse

import (
	"fmt"

	"github.com/matzehuels/rectile/pkg/tiling/grid"
)

// Direction is a step from one cell to an orthogonal neighbor.
type Direction int

const (
	East Direction = iota
	North
	South
	West
)

var directionNames = [...]string{"east", "north", "south", "west"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	for i, n := range directionNames {
		if n == string(b) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", b)
}

// Parity distinguishes the two alternating rectangle families. The center is
// TypeOne; every orthogonal step flips the parity.
type Parity int

const (
	TypeOne Parity = 1
	TypeTwo Parity = 2
)

// neighbor describes one step of a parity's walk: where it goes and how the
// neighbor's edges follow from the source's edges and the neighbor's size.
type neighbor struct {
	dir    Direction
	dx, dy int
	next   Parity
	sides  func(w, h float64, s grid.Bounds) grid.Bounds
}

// Tables are listed in walk order: East, North, South, West.
var typeOneNeighbors = [...]neighbor{
	{East, 1, 0, TypeTwo, func(w, h float64, s grid.Bounds) grid.Bounds {
		return grid.Bounds{Top: s.Top, Right: s.Right + w, Bottom: s.Top - h, Left: s.Right}
	}},
	{North, 0, 1, TypeTwo, func(w, h float64, s grid.Bounds) grid.Bounds {
		return grid.Bounds{Top: s.Top + h, Right: s.Left + w, Bottom: s.Top, Left: s.Left}
	}},
	{South, 0, -1, TypeTwo, func(w, h float64, s grid.Bounds) grid.Bounds {
		return grid.Bounds{Top: s.Bottom, Right: s.Right, Bottom: s.Bottom - h, Left: s.Right - w}
	}},
	{West, -1, 0, TypeTwo, func(w, h float64, s grid.Bounds) grid.Bounds {
		return grid.Bounds{Top: s.Bottom + h, Right: s.Left, Bottom: s.Bottom, Left: s.Left - w}
	}},
}

var typeTwoNeighbors = [...]neighbor{
	{East, 1, 0, TypeOne, func(w, h float64, s grid.Bounds) grid.Bounds {
		return grid.Bounds{Top: s.Bottom + h, Right: s.Right + w, Bottom: s.Bottom, Left: s.Right}
	}},
	{North, 0, 1, TypeOne, func(w, h float64, s grid.Bounds) grid.Bounds {
		return grid.Bounds{Top: s.Top + h, Right: s.Right, Bottom: s.Top, Left: s.Right - w}
	}},
	{South, 0, -1, TypeOne, func(w, h float64, s grid.Bounds) grid.Bounds {
		return grid.Bounds{Top: s.Bottom, Right: s.Left + w, Bottom: s.Bottom - h, Left: s.Left}
	}},
	{West, -1, 0, TypeOne, func(w, h float64, s grid.Bounds) grid.Bounds {
		return grid.Bounds{Top: s.Top, Right: s.Left, Bottom: s.Top - h, Left: s.Left - w}
	}},
}

func neighborsOf(p Parity) []neighbor {
	if p == TypeTwo {
		return typeTwoNeighbors[:]
	}
	return typeOneNeighbors[:]
}
