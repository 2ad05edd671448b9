// Package tiling generates rectangular tilings of the plane from seed
// rectangles.
//
// # Overview
//
// Seeds are placed on a square grid around a center cell. Propagation
// ([propagate.Propagate]) infers the widths and heights of the remaining cells
// from local arithmetic relations; a depth-first traversal
// ([traverse.Traverse]) then assigns absolute coordinates to every reachable
// cell with known, positive dimensions.
//
// # Usage
//
//	cfg := tiling.DefaultConfig()
//	p, _ := preset.Lookup("classic")
//	res, err := tiling.Generate(cfg, p.Seeds)
//	if err != nil {
//	    return err
//	}
//	for _, r := range res.Rectangles {
//	    fmt.Println(r.Col, r.Row, r.Left, r.Bottom, r.Width, r.Height)
//	}
//
// # Convergence
//
// Propagation stops at the first round that learns nothing. When the
// iteration budget runs out first, [Result.Converged] is false and the tiling
// may be incomplete; this is a warning, not an error.
//
// [propagate.Propagate]: github.com/matzehuels/rectile/pkg/tiling/propagate.Propagate
// [traverse.Traverse]: github.com/matzehuels/rectile/pkg/tiling/traverse.Traverse
package tiling
