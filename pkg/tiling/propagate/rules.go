package propagate

import "github.com/matzehuels/rectile/pkg/tiling/grid"

// extrapolate continues the arithmetic sequence opposite -> center -> far
// along direction (u, v) for dimension d.
func (e *engine) extrapolate(i, j, u, v int, d grid.Dim) bool {
	center := e.g.At(i, j)
	opp := e.g.At(i-u, j-v)
	far := e.g.At(i+u, j+v)
	if center == nil || opp == nil || far == nil || !opp.Known(d) {
		return false
	}
	derived := 2*center.Value(d) - opp.Value(d)
	if far.Learn(d, derived) {
		return true
	}
	e.record(i+u, j+v, d, Diagonal, far.Value(d), derived)
	return false
}

// checkHLine applies the parallelogram relation to widths of the block
// a=(i,j+1) b=(i+1,j+1) c=(i,j) d=(i+1,j).
func (e *engine) checkHLine(i, j int) bool {
	return e.block(grid.Width, Horizontal,
		[4][2]int{{i, j + 1}, {i + 1, j + 1}, {i, j}, {i + 1, j}})
}

// checkVLine applies the parallelogram relation to heights of the block
// a=(i,j+1) b=(i,j) c=(i+1,j+1) d=(i+1,j).
func (e *engine) checkVLine(i, j int) bool {
	return e.block(grid.Height, Vertical,
		[4][2]int{{i, j + 1}, {i, j}, {i + 1, j + 1}, {i + 1, j}})
}

// block enforces a + b = c + d over the cells at pos (in a, b, c, d order).
// Each of the four relations fires only when the other three are known and
// its target is not.
func (e *engine) block(dim grid.Dim, rule Pass, pos [4][2]int) bool {
	var cells [4]*grid.Cell
	for k, p := range pos {
		if cells[k] = e.g.At(p[0], p[1]); cells[k] == nil {
			return false
		}
	}
	a, b, c, d := cells[0], cells[1], cells[2], cells[3]
	ka, kb, kc, kd := a.Known(dim), b.Known(dim), c.Known(dim), d.Known(dim)
	val := func(x *grid.Cell) float64 { return x.Value(dim) }

	changed := false
	if kc && ka && kb && !kd {
		d.Learn(dim, val(a)+val(b)-val(c))
		changed = true
	}
	if kd && ka && kb && !kc {
		c.Learn(dim, val(a)+val(b)-val(d))
		changed = true
	}
	if ka && kc && kd && !kb {
		b.Learn(dim, val(c)+val(d)-val(a))
		changed = true
	}
	if kb && kc && kd && !ka {
		a.Learn(dim, val(c)+val(d)-val(b))
		changed = true
	}
	if ka && kb && kc && kd {
		e.record(pos[3][0], pos[3][1], dim, rule, val(d), val(a)+val(b)-val(c))
	}
	return changed
}
