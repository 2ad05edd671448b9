package pipeline

import (
	"github.com/matzehuels/rectile/pkg/render/sink"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// Generate runs the tiling algorithm for opts without caching.
// Non-convergence and recorded conflicts are logged as warnings.
func Generate(opts Options) (*tiling.Result, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	res, err := tiling.Generate(opts.Config, opts.Seeds)
	if err != nil {
		return nil, err
	}
	warn(opts, res)
	return res, nil
}

func warn(opts Options, res *tiling.Result) {
	if !res.Converged {
		opts.Logger.Warn("propagation stopped at the iteration cap",
			"preset", opts.Preset, "iterations", res.Iterations)
	}
	if n := len(res.Conflicts); n > 0 {
		opts.Logger.Warn("seeds are inconsistent; first derivation kept",
			"preset", opts.Preset, "conflicts", n, "first", res.Conflicts[0].String())
	}
}

// FromDocument rebuilds a tiling result from its JSON form. The grid is
// not part of the document, so Grid is nil.
func FromDocument(doc sink.Document) *tiling.Result {
	return &tiling.Result{
		Rectangles: doc.Rectangles,
		Edges:      doc.Edges,
		Iterations: doc.Iterations,
		Converged:  doc.Converged,
		Conflicts:  doc.Conflicts,
	}
}
