// Package nodelink renders a tiling's discovery tree as a node-link diagram.
//
// # Overview
//
// The traversal that positions rectangles walks the grid depth-first from the
// center. Every step it takes is an edge of a spanning tree over the emitted
// rectangles. This package turns that tree into Graphviz DOT and renders it,
// which makes the walk order and the parity alternation easy to inspect.
//
// # Usage
//
//	dot := nodelink.ToDOT(res.Rectangles, res.Edges, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Options
//
//   - Detailed: node labels include size and absolute position
//   - Colorize: nodes are filled with their rectangle's color
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
