package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/render"
	"github.com/matzehuels/rectile/pkg/tiling"
	"github.com/matzehuels/rectile/pkg/tiling/traverse"
)

// Options configures discovery-tree rendering.
type Options struct {
	// Detailed includes size and position in node labels.
	// When false, only the grid offset is shown.
	Detailed bool
	// Colorize fills nodes with the rectangle's color.
	Colorize bool
}

// dotHeader sets graph-wide defaults: top-down ranks and monospace boxes.
const dotHeader = `digraph discovery {
  rankdir=TB;
  ranksep=0.35;
  nodesep=0.25;
  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white, fontname="monospace", fontsize=12];
  edge [fontsize=9, fontcolor="#666666", arrowsize=0.7];
`

// ToDOT converts the traversal tree to Graphviz DOT. Nodes are listed in
// emission order; the center node is drawn with a double outline. Each edge
// is labelled with the direction it was walked.
func ToDOT(rects []tiling.Rectangle, edges []tiling.Edge, opts Options) string {
	var b strings.Builder
	b.WriteString(dotHeader)
	for i, r := range rects {
		fmt.Fprintf(&b, "  %q [%s];\n", nodeID(traverse.Offset{X: r.Col, Y: r.Row}), strings.Join(fmtAttrs(r, i == 0, opts), ", "))
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", nodeID(e.From), nodeID(e.To), e.Direction.String())
	}
	b.WriteString("}\n")
	return b.String()
}

func nodeID(o traverse.Offset) string {
	return fmt.Sprintf("%d,%d", o.X, o.Y)
}

func fmtLabel(r tiling.Rectangle, detailed bool) string {
	id := fmt.Sprintf("(%d, %d)", r.Col, r.Row)
	if !detailed {
		return id
	}
	return fmt.Sprintf("%s\n%s x %s\nat %s, %s", id,
		fmtNum(r.Width), fmtNum(r.Height), fmtNum(r.Left), fmtNum(r.Bottom))
}

func fmtAttrs(r tiling.Rectangle, root bool, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(r, opts.Detailed))}
	if opts.Colorize && r.Fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", r.Fill))
	}
	if root {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func fmtNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg header into a plain
// pixel viewBox so the diagram scales like the tiling images.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
