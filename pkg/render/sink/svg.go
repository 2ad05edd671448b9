package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/rectile/pkg/render/viewport"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// RenderSVG renders rects as a standalone SVG document.
func RenderSVG(rects []tiling.Rectangle, opts ...Option) []byte {
	s := newStyle(opts...)
	frame := viewport.Fit(rects, s.canvasSize)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.canvasSize, s.canvasSize, s.canvasSize, s.canvasSize)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s" />`+"\n", backgroundColor)

	for _, r := range rects {
		renderRect(&buf, frame.Place(r), r, s)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRect(buf *bytes.Buffer, b viewport.Box, r tiling.Rectangle, s style) {
	fmt.Fprintf(buf, `  <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s" stroke="%s" stroke-width="%s" />`,
		b.X, b.Y, b.Width, b.Height, s.fill(r), strokeColor, formatNumber(s.edgeWidth))
	if s.labels {
		cx, cy := b.Center()
		fmt.Fprintf(buf, `<text x="%.3f" y="%.3f" font-family="JetBrains Mono, monospace" font-size="%s" dominant-baseline="middle" text-anchor="middle" fill="%s">%s</text>`,
			cx, cy, formatNumber(fontSize(b.Height)), labelColor, html.EscapeString(label(r)))
	}
	buf.WriteByte('\n')
}
