// Package propagate infers unknown widths and heights from known neighbors.
//
// A round applies three passes over the grid:
//
//   - Diagonal: arithmetic extrapolation along each diagonal direction,
//     far = 2*center - opposite, for widths and heights independently.
//   - Horizontal: on an (i, j)-parity sub-lattice, a 2x2 block of widths
//     obeys a + b = c + d; three known values fix the fourth.
//   - Vertical: the same relation on heights over the complementary
//     sub-lattice and a transposed block.
//
// Rounds repeat until one learns nothing (a fixed point) or the iteration
// budget is spent. No rule ever overwrites a known value, so the set of
// known cells reached is independent of pass order. When seeds are
// inconsistent, values are first-writer-wins in scan order; ConflictPolicy
// controls whether such disagreements are ignored, recorded or fatal.
package propagate
