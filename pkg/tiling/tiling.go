package tiling

import (
	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling/grid"
	"github.com/matzehuels/rectile/pkg/tiling/propagate"
	"github.com/matzehuels/rectile/pkg/tiling/traverse"
)

// Rectangle is a positioned tile.
type Rectangle = traverse.Rectangle

// Edge is one step of the traversal's discovery tree.
type Edge = traverse.Edge

// Seed is an initial rectangle at an offset from the center.
type Seed = grid.Seed

// Result is the outcome of Generate.
type Result struct {
	Rectangles []Rectangle          `json:"rectangles"`
	Edges      []Edge               `json:"edges,omitempty"`
	Iterations int                  `json:"iterations"`
	Converged  bool                 `json:"converged"`
	Conflicts  []propagate.Conflict `json:"conflicts,omitempty"`
	Grid       *grid.Grid           `json:"-"`
}

// ValidateSeeds rejects an empty seed list and seeds whose dimensions are
// not positive finite numbers.
func ValidateSeeds(seeds []Seed) error {
	if len(seeds) == 0 {
		return errors.New(errors.ErrCodeInvalidSeed, "at least one seed rectangle is required")
	}
	for _, s := range seeds {
		if !finite(s.Width) || !finite(s.Height) || s.Width <= 0 || s.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidSeed,
				"seed at offset (%d, %d) must have positive width and height, got %vx%v",
				s.X, s.Y, s.Width, s.Height)
		}
	}
	return nil
}

// Generate validates cfg and seeds, then seeds a fresh grid, propagates to a
// fixed point (or the iteration cap) and traverses it.
func Generate(cfg Config, seeds []Seed) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateSeeds(seeds); err != nil {
		return nil, err
	}
	policy, err := cfg.ConflictPolicy()
	if err != nil {
		return nil, err
	}

	g := grid.New(cfg.CX)
	if err := g.Seed(seeds); err != nil {
		return nil, err
	}

	prop, err := propagate.Propagate(g, propagate.Options{
		HalfWidth:     cfg.HalfWidth(),
		MaxIterations: cfg.MaxIterations,
		Conflicts:     policy,
	})
	if err != nil {
		return nil, err
	}

	walk, err := traverse.Traverse(g, traverse.Options{
		TravelHalfWidth: cfg.TravelHalfWidth(),
		Colorize:        cfg.Colorize,
		MaxSide:         cfg.MaxSide,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Rectangles: walk.Rectangles,
		Edges:      walk.Edges,
		Iterations: prop.Iterations,
		Converged:  prop.Converged,
		Conflicts:  prop.Conflicts,
		Grid:       g,
	}, nil
}
