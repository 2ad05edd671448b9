// Package sink renders positioned rectangles to output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG document
//   - [RenderPNG]: raster image drawn natively with fogleman/gg
//   - [RenderPDF]: SVG converted by rsvg-convert
//   - [RenderJSON]: the generation result as a JSON document
//
// All image sinks share one look: a #f6f8ff background, one rectangle per
// tile filled with its color (or white), a black edge of configurable width
// and an optional "w,h" label at the tile center. Coordinates are fitted to
// the canvas by [viewport.Fit].
//
// # Options
//
// Styling is configured with [Option] values. [FromConfig] derives them from a
// [tiling.Config]:
//
//	svg := sink.RenderSVG(res.Rectangles, sink.FromConfig(cfg)...)
//
// [viewport.Fit]: github.com/matzehuels/rectile/pkg/render/viewport.Fit
// [tiling.Config]: github.com/matzehuels/rectile/pkg/tiling.Config
package sink
