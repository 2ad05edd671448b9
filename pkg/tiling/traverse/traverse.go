// Package traverse turns a propagated grid into positioned rectangles.
//
// The walk starts at the center cell, whose lower-left corner is the origin,
// and proceeds depth-first through orthogonal neighbors. Each step derives
// the neighbor's absolute edges from the source's edges and the neighbor's
// own width and height, using one of two direction tables selected by the
// source's parity.
package traverse

import (
	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling/color"
	"github.com/matzehuels/rectile/pkg/tiling/grid"
)

// Options configures a traversal.
type Options struct {
	// TravelHalfWidth bounds the walk to offsets within [-TH, TH] on both axes.
	TravelHalfWidth int
	// Colorize fills rectangles by size; otherwise fills are white.
	Colorize bool
	// MaxSide normalizes the color mapping.
	MaxSide float64
}

// Offset is a logical position relative to the center cell.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rectangle is one emitted tile in absolute coordinates (y grows upward).
type Rectangle struct {
	Col    int     `json:"col"`
	Row    int     `json:"row"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

// Edge is one step of the discovery tree.
type Edge struct {
	From      Offset    `json:"from"`
	To        Offset    `json:"to"`
	Direction Direction `json:"direction"`
}

// Result holds rectangles in emission order and the discovery tree.
type Result struct {
	Rectangles []Rectangle
	Edges      []Edge
}

type frame struct {
	parity  Parity
	i, j    int
	next    int
	entered bool
}

// Traverse walks g from its center and emits every reachable drawable cell
// exactly once. It mutates the cells' Drawn, Discovered and bounds state, so a
// grid is traversed only once.
func Traverse(g *grid.Grid, opts Options) (*Result, error) {
	center := g.CenterCell()
	if center == nil || !center.Complete() {
		return nil, errors.New(errors.ErrCodeMissingCenterDimensions,
			"central rectangle lacks width or height; check seeds")
	}
	center.Place(grid.Bounds{Top: center.Height, Right: center.Width})
	center.Discovered = true

	cx, cy := g.Center()
	within := func(i, j int) bool {
		th := opts.TravelHalfWidth
		return i >= cx-th && i <= cx+th && j >= cy-th && j <= cy+th
	}

	res := &Result{}
	stack := []frame{{parity: TypeOne, i: cx, j: cy}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !within(f.i, f.j) {
			continue
		}
		cell := g.At(f.i, f.j)
		if cell == nil {
			continue
		}

		if !f.entered {
			if !cell.Drawn && cell.Width > 0 && cell.Height > 0 {
				res.Rectangles = append(res.Rectangles, emit(g, f.i, f.j, cell, opts))
				cell.Drawn = true
			}
			f.entered = true
		}

		table := neighborsOf(f.parity)
		if f.next >= len(table) {
			continue
		}
		def := table[f.next]
		f.next++
		stack = append(stack, f)

		ni, nj := f.i+def.dx, f.j+def.dy
		if !within(ni, nj) {
			continue
		}
		n := g.At(ni, nj)
		if n == nil || n.Drawn || n.Discovered || !n.Drawable() {
			continue
		}
		if !n.Placed() {
			src, _ := cell.Bounds()
			n.Place(def.sides(n.Width, n.Height, src))
		}
		n.Discovered = true

		fx, fy := g.Offset(f.i, f.j)
		tx, ty := g.Offset(ni, nj)
		res.Edges = append(res.Edges, Edge{From: Offset{fx, fy}, To: Offset{tx, ty}, Direction: def.dir})
		stack = append(stack, frame{parity: def.next, i: ni, j: nj})
	}

	if len(res.Rectangles) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyResult,
			"no drawable rectangles were found; adjust parameters")
	}
	return res, nil
}

func emit(g *grid.Grid, i, j int, c *grid.Cell, opts Options) Rectangle {
	b, _ := c.Bounds()
	x, y := g.Offset(i, j)
	return Rectangle{
		Col:    x,
		Row:    y,
		Left:   b.Left,
		Right:  b.Right,
		Top:    b.Top,
		Bottom: b.Bottom,
		Width:  c.Width,
		Height: c.Height,
		Fill:   color.Fill(c.Width, c.Height, opts.MaxSide, opts.Colorize),
	}
}
