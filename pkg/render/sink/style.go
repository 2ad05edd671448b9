package sink

import (
	"math"
	"strconv"

	"github.com/matzehuels/rectile/pkg/tiling"
	"github.com/matzehuels/rectile/pkg/tiling/color"
)

const (
	backgroundColor = "#f6f8ff"
	strokeColor     = "#000000"
	labelColor      = "#111111"
	minFontSize     = 12.0
)

// Option configures image rendering.
type Option func(*style)

type style struct {
	canvasSize int
	edgeWidth  float64
	colorize   bool
	labels     bool
}

func WithCanvasSize(px int) Option   { return func(s *style) { s.canvasSize = px } }
func WithEdgeWidth(w float64) Option { return func(s *style) { s.edgeWidth = w } }
func WithColorize(on bool) Option    { return func(s *style) { s.colorize = on } }
func WithLabels(on bool) Option      { return func(s *style) { s.labels = on } }

// FromConfig returns the options matching cfg's render settings.
func FromConfig(cfg tiling.Config) []Option {
	return []Option{
		WithCanvasSize(cfg.CanvasSize),
		WithEdgeWidth(cfg.EdgeWidth),
		WithColorize(cfg.Colorize),
		WithLabels(cfg.Label),
	}
}

func newStyle(opts ...Option) style {
	s := style{
		canvasSize: tiling.DefaultCanvasSize,
		edgeWidth:  tiling.DefaultEdgeWidth,
		colorize:   true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s style) fill(r tiling.Rectangle) string {
	if !s.colorize || r.Fill == "" {
		return color.White
	}
	return r.Fill
}

// label is the "w,h" text drawn at a tile's center.
func label(r tiling.Rectangle) string {
	return formatNumber(r.Width) + "," + formatNumber(r.Height)
}

func fontSize(boxHeight float64) float64 {
	return math.Max(minFontSize, boxHeight/5)
}

// formatNumber prints v with the shortest exact representation.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
