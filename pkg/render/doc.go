// Package render turns generated tilings into images and documents.
//
// # Overview
//
//   - Generic format conversion (SVG to PDF/PNG) in this package
//   - Canvas fitting in [viewport]
//   - Output formats (SVG, PNG, PDF, JSON) in [sink]
//   - Discovery-tree diagrams in [nodelink]
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). The tiling PNG sink draws natively and does not need it;
// PDF output and the discovery-tree PNG do.
//
//	svg := sink.RenderSVG(rects, sink.FromConfig(cfg)...)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [viewport]: github.com/matzehuels/rectile/pkg/render/viewport
// [sink]: github.com/matzehuels/rectile/pkg/render/sink
// [nodelink]: github.com/matzehuels/rectile/pkg/render/nodelink
package render
