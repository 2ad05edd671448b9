package sink

import (
	"bytes"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/render/viewport"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// DefaultScale is the device-pixel ratio used for PNG output.
const DefaultScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	opts  []Option
	scale float64
}

// WithPNGOptions passes styling options through to the PNG renderer.
func WithPNGOptions(opts ...Option) PNGOption {
	return func(r *pngRenderer) { r.opts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// RenderPNG rasterizes rects. The image is canvasSize*scale pixels square;
// layout happens in canvas units so output matches the SVG sink.
func RenderPNG(rects []tiling.Rectangle, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}
	s := newStyle(r.opts...)
	frame := viewport.Fit(rects, s.canvasSize)

	px := int(math.Round(float64(s.canvasSize) * r.scale))
	dc := gg.NewContext(px, px)
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	faces := map[float64]font.Face{}
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, rect := range rects {
		b := frame.Place(rect)
		x, y, w, h := b.X*r.scale, b.Y*r.scale, b.Width*r.scale, b.Height*r.scale

		dc.DrawRectangle(x, y, w, h)
		dc.SetHexColor(s.fill(rect))
		if s.edgeWidth > 0 {
			dc.FillPreserve()
			dc.SetHexColor(strokeColor)
			dc.SetLineWidth(s.edgeWidth * r.scale)
			dc.Stroke()
		} else {
			dc.Fill()
		}

		if !s.labels {
			continue
		}
		size := fontSize(b.Height) * r.scale
		face, ok := faces[size]
		if !ok {
			f, err := monoFont()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
			}
			face = truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
			faces[size] = face
		}
		dc.SetFontFace(face)
		dc.SetHexColor(labelColor)
		dc.DrawStringAnchored(label(rect), x+w/2, y+h/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
