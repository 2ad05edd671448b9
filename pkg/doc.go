// Package pkg provides the core libraries for Rectile rectangle tilings.
//
// # Overview
//
// Rectile starts from a handful of seed rectangles around a center cell and
// fills the plane with rectangles whose widths and heights follow from their
// neighbors. The pkg directory is organized into four areas:
//
//  1. [tiling] - Domain logic (grid, propagation, traversal, coloring)
//  2. [render] - Output (SVG, PNG, PDF, JSON, discovery-tree diagrams)
//  3. [pipeline] - Orchestration (validate → generate → render, with caching)
//  4. Infrastructure ([cache], [config], [errors], [observability], [server])
//
// # Architecture
//
// The typical data flow through Rectile:
//
//	Preset or seed file
//	         ↓
//	    [tiling/grid] package (seed the center cells)
//	         ↓
//	    [tiling/propagate] package (learn dimensions to a fixed point)
//	         ↓
//	    [tiling/traverse] package (place rectangles depth-first)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON)
//
// # Quick Start
//
// Generate the classic preset and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/rectile/pkg/render/sink"
//	    "github.com/matzehuels/rectile/pkg/tiling"
//	    "github.com/matzehuels/rectile/pkg/tiling/preset"
//	)
//
//	cfg := tiling.DefaultConfig()
//	p, _ := preset.Lookup("classic")
//	res, _ := tiling.Generate(cfg, p.Seeds)
//	svg := sink.RenderSVG(res.Rectangles, sink.FromConfig(cfg)...)
//
// # Main Packages
//
// [tiling] - [tiling.Generate] runs the whole algorithm. Subpackages hold the
// grid of cells, the propagation rules, the depth-first traversal, the color
// mapping and the built-in presets.
//
// [render] - Format conversion through rsvg-convert. [render/sink] writes the
// tiling itself; [render/nodelink] draws the traversal's discovery tree with
// Graphviz.
//
// [pipeline] - The pipeline shared by the CLI and the HTTP server. A Runner
// caches generated documents and rendered artifacts.
//
// [cache] - File, Redis and no-op caches behind one interface, plus key
// derivation.
//
// [server] - HTTP API serving presets and tilings.
//
// # Testing
//
// Run tests:
//
//	go test ./...                                       # All tests
//	go test ./pkg/tiling/...                            # Algorithm only
//	RECTILE_TEST_REDIS_URL=redis://localhost:6379/15 go test ./pkg/cache
//
// [tiling]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/tiling
// [render]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/server
//
// [tiling/grid]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/tiling/grid
// [tiling/propagate]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/tiling/propagate
// [tiling/traverse]: https://pkg.go.dev/github.com/matzehuels/rectile/pkg/tiling/traverse
package pkg
