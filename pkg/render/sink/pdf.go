package sink

import (
	"context"

	"github.com/matzehuels/rectile/pkg/render"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// RenderPDF renders rects as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, rects []tiling.Rectangle, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(rects, opts...))
}
