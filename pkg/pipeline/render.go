package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/render/nodelink"
	"github.com/matzehuels/rectile/pkg/render/sink"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res *tiling.Result, opts Options) (map[string][]byte, error) {
	doc := sink.NewDocument(opts.Preset, opts.Config, res)
	if opts.IsTree() {
		return renderTree(ctx, doc, opts)
	}
	return renderTiles(ctx, doc, opts)
}

// renderTiles draws the rectangles.
func renderTiles(ctx context.Context, doc sink.Document, opts Options) (map[string][]byte, error) {
	styleOpts := sink.FromConfig(opts.Config)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(doc.Rectangles, styleOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(doc.Rectangles, sink.WithPNGOptions(styleOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, doc.Rectangles, styleOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(doc)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tiles format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderTree draws the discovery tree. The DOT source is built once and
// shared by every graphviz format.
func renderTree(ctx context.Context, doc sink.Document, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(doc.Rectangles, doc.Edges, nodelink.Options{
		Detailed: opts.Config.Label,
		Colorize: opts.Config.Colorize,
	})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = sink.RenderJSON(doc)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
