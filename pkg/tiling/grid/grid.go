package grid

import (
	"fmt"

	"github.com/matzehuels/rectile/pkg/errors"
)

// Grid is a dim x dim row-major array of cells with its center at (cx, cy).
type Grid struct {
	dim    int
	cx, cy int
	cells  []Cell
}

// New allocates a grid of side 2*cx centered at (cx, cx), every cell unknown,
// undrawn, undiscovered and unplaced.
func New(cx int) *Grid {
	dim := 2 * cx
	return &Grid{
		dim:   dim,
		cx:    cx,
		cy:    cx,
		cells: make([]Cell, dim*dim),
	}
}

// Dim returns the side length.
func (g *Grid) Dim() int { return g.dim }

// Center returns the physical index of the center cell.
func (g *Grid) Center() (int, int) { return g.cx, g.cy }

// CenterCell returns the center cell.
func (g *Grid) CenterCell() *Cell { return g.At(g.cx, g.cy) }

// Contains reports whether (i, j) is a valid physical index.
func (g *Grid) Contains(i, j int) bool {
	return i >= 0 && j >= 0 && i < g.dim && j < g.dim
}

// At returns the cell at physical index (i, j), or nil outside the grid.
func (g *Grid) At(i, j int) *Cell {
	if !g.Contains(i, j) {
		return nil
	}
	return &g.cells[i*g.dim+j]
}

// Offset converts a physical index to a logical offset from the center.
func (g *Grid) Offset(i, j int) (x, y int) { return i - g.cx, j - g.cy }

// Index converts a logical offset to a physical index.
func (g *Grid) Index(x, y int) (i, j int) { return g.cx + x, g.cy + y }

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

// Equal reports whether both grids hold identical dimension knowledge.
// Traversal state (drawn, discovered, bounds) is ignored.
func (g *Grid) Equal(o *Grid) bool {
	if g.dim != o.dim || g.cx != o.cx || g.cy != o.cy {
		return false
	}
	for k := range g.cells {
		a, b := &g.cells[k], &o.cells[k]
		if a.WidthKnown != b.WidthKnown || a.HeightKnown != b.HeightKnown {
			return false
		}
		if a.WidthKnown && a.Width != b.Width {
			return false
		}
		if a.HeightKnown && a.Height != b.Height {
			return false
		}
	}
	return true
}

// CountKnown returns how many cells know dimension d.
func (g *Grid) CountKnown(d Dim) int {
	n := 0
	for k := range g.cells {
		if g.cells[k].Known(d) {
			n++
		}
	}
	return n
}

// String renders a compact description, useful in test failures.
func (g *Grid) String() string {
	return fmt.Sprintf("grid(%dx%d, center=%d,%d, widths=%d, heights=%d)",
		g.dim, g.dim, g.cx, g.cy, g.CountKnown(Width), g.CountKnown(Height))
}

// Seed is an initial rectangle placed at offset (X, Y) from the center.
type Seed struct {
	X      int     `json:"x" toml:"x" yaml:"x"`
	Y      int     `json:"y" toml:"y" yaml:"y"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Seed writes each seed's dimensions into its cell and marks both known.
// Seeds are applied in order, so a later seed at the same offset replaces an
// earlier one. Sign is not checked here.
func (g *Grid) Seed(seeds []Seed) error {
	for _, s := range seeds {
		i, j := g.Index(s.X, s.Y)
		c := g.At(i, j)
		if c == nil {
			return errors.New(errors.ErrCodeSeedOutOfBounds,
				"seed rectangle at offset (%d, %d) is outside the %dx%d grid", s.X, s.Y, g.dim, g.dim)
		}
		c.Width, c.Height = s.Width, s.Height
		c.WidthKnown, c.HeightKnown = true, true
	}
	return nil
}
