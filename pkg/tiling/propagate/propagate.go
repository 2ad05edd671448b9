package propagate

import (
	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling/grid"
)

type conflictKey struct {
	col, row int
	dim      grid.Dim
	rule     Pass
}

// engine carries one run's grid, options and conflict log.
type engine struct {
	g         *grid.Grid
	opts      Options
	seen      map[conflictKey]struct{}
	conflicts []Conflict
}

func newEngine(g *grid.Grid, opts Options) *engine {
	return &engine{g: g, opts: opts, seen: make(map[conflictKey]struct{})}
}

// Propagate runs rounds until a fixed point or opts.MaxIterations
// progressing rounds. Running out of iterations is reported through
// Result.Converged, not as an error; the only error is INCONSISTENT_SEEDS
// under ConflictFail.
func Propagate(g *grid.Grid, opts Options) (*Result, error) {
	e := newEngine(g, opts)
	res := &Result{}

	for res.Iterations < opts.MaxIterations {
		before := len(e.conflicts)
		progress := e.round()
		if opts.Conflicts == ConflictFail && len(e.conflicts) > before {
			res.Conflicts = e.conflicts
			return res, errors.New(errors.ErrCodeInconsistentSeeds,
				"seeds are inconsistent: %s", e.conflicts[before])
		}
		if !progress {
			res.Converged = true
			break
		}
		res.Iterations++
	}

	res.Conflicts = e.conflicts
	return res, nil
}

// Round applies one round of all passes and reports whether any dimension
// was learned, along with the conflicts found during the round.
func Round(g *grid.Grid, opts Options) (bool, []Conflict) {
	e := newEngine(g, opts)
	progress := e.round()
	return progress, e.conflicts
}

func (e *engine) round() bool {
	progress := false
	for _, p := range e.opts.passes() {
		switch p {
		case Diagonal:
			progress = e.diagonalPass() || progress
		case Horizontal:
			progress = e.horizontalPass() || progress
		case Vertical:
			progress = e.verticalPass() || progress
		}
	}
	return progress
}

func (e *engine) diagonalPass() bool {
	cx, cy := e.g.Center()
	h := e.opts.HalfWidth
	progress := false
	for i := cx - h; i < cx+h; i++ {
		for j := cy - h; j < cy+h; j++ {
			c := e.g.At(i, j)
			if c == nil {
				continue
			}
			for _, d := range grid.Dims {
				if !c.Known(d) {
					continue
				}
				for _, u := range [2]int{-1, 1} {
					for _, v := range [2]int{-1, 1} {
						progress = e.extrapolate(i, j, u, v, d) || progress
					}
				}
			}
		}
	}
	return progress
}

func (e *engine) horizontalPass() bool {
	cx, cy := e.g.Center()
	h := e.opts.HalfWidth
	progress := false
	for i := cx - h; i <= cx+h; i++ {
		for k := cy - h; k <= cy+h; k += 2 {
			progress = e.checkHLine(i, k+(i&1)) || progress
		}
	}
	return progress
}

func (e *engine) verticalPass() bool {
	cx, cy := e.g.Center()
	h := e.opts.HalfWidth
	progress := false
	for i := cx - h; i <= cx+h; i++ {
		for k := cy - h + 1; k <= cy+h; k += 2 {
			progress = e.checkVLine(i, k+(i&1)) || progress
		}
	}
	return progress
}

func (e *engine) record(i, j int, d grid.Dim, rule Pass, known, derived float64) {
	if e.opts.Conflicts == ConflictIgnore || known == derived {
		return
	}
	col, row := e.g.Offset(i, j)
	key := conflictKey{col, row, d, rule}
	if _, dup := e.seen[key]; dup {
		return
	}
	e.seen[key] = struct{}{}
	e.conflicts = append(e.conflicts, Conflict{
		Col: col, Row: row, Dim: d, Rule: rule, Known: known, Derived: derived,
	})
}
