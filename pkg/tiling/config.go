package tiling

import (
	"math"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling/propagate"
)

// Default configuration values.
const (
	DefaultCX            = 32
	DefaultGridWidth     = 28
	DefaultMaxSide       = 20
	DefaultEdgeWidth     = 1
	DefaultMaxIterations = 1000
	DefaultCanvasSize    = 800
)

// Upper bounds accepted by Validate. The grid holds (2*CX)^2 cells.
const (
	MaxCX            = 1024
	MaxIterationsCap = 100000
	MaxCanvasSize    = 8192
)

// Config holds the generation parameters.
type Config struct {
	// CX is the center index on both axes; the grid is 2*CX cells wide.
	CX int `json:"cx" toml:"cx" yaml:"cx"`
	// GridWidth is the side of the propagation sub-square.
	GridWidth int `json:"grid_width" toml:"grid_width" yaml:"grid_width"`
	// MaxSide normalizes the color mapping.
	MaxSide float64 `json:"max_side" toml:"max_side" yaml:"max_side"`
	// EdgeWidth is the stroke width used by renderers.
	EdgeWidth float64 `json:"edge_width" toml:"edge_width" yaml:"edge_width"`
	Colorize  bool    `json:"colorize" toml:"colorize" yaml:"colorize"`
	Label     bool    `json:"label" toml:"label" yaml:"label"`
	// MaxIterations caps progressing propagation rounds.
	MaxIterations int `json:"max_iterations" toml:"max_iterations" yaml:"max_iterations"`
	// CanvasSize is the rendered image side in pixels.
	CanvasSize int `json:"canvas_size" toml:"canvas_size" yaml:"canvas_size"`
	// Conflicts is "ignore", "record" or "fail". Empty means "record".
	Conflicts string `json:"conflicts,omitempty" toml:"conflicts" yaml:"conflicts"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		CX:            DefaultCX,
		GridWidth:     DefaultGridWidth,
		MaxSide:       DefaultMaxSide,
		EdgeWidth:     DefaultEdgeWidth,
		Colorize:      true,
		Label:         false,
		MaxIterations: DefaultMaxIterations,
		CanvasSize:    DefaultCanvasSize,
		Conflicts:     propagate.ConflictRecord.String(),
	}
}

// CY is the center row index. The grid is square, so it equals CX.
func (c Config) CY() int { return c.CX }

// HalfWidth is half the propagation sub-square side.
func (c Config) HalfWidth() int { return c.GridWidth / 2 }

// TravelHalfWidth bounds the traversal; it is one less than HalfWidth so
// every visited cell has had all its propagation neighbors scanned.
func (c Config) TravelHalfWidth() int { return c.HalfWidth() - 1 }

// MaxDim is the grid side in cells.
func (c Config) MaxDim() int { return 2 * c.CX }

// ConflictPolicy parses the Conflicts field.
func (c Config) ConflictPolicy() (propagate.ConflictPolicy, error) {
	return propagate.ParseConflictPolicy(c.Conflicts)
}

// Validate checks every field and returns the first violation as an
// INVALID_CONFIGURATION error.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfiguration, format, args...)
	}
	switch {
	case c.CX <= 0:
		return invalid("cx must be positive, got %d", c.CX)
	case c.CX%4 != 0:
		return invalid("cx must be a multiple of 4, got %d", c.CX)
	case c.CX > MaxCX:
		return invalid("cx must be at most %d, got %d", MaxCX, c.CX)
	case c.GridWidth <= 0:
		return invalid("grid width must be positive, got %d", c.GridWidth)
	case c.GridWidth%2 != 0:
		return invalid("grid width must be even, got %d", c.GridWidth)
	case c.GridWidth >= c.CX:
		return invalid("grid width must be smaller than cx (%d >= %d)", c.GridWidth, c.CX)
	case !finite(c.MaxSide) || c.MaxSide <= 0:
		return invalid("max side must be positive, got %v", c.MaxSide)
	case c.MaxIterations <= 0 || c.MaxIterations > MaxIterationsCap:
		return invalid("max iterations must be in 1..%d, got %d", MaxIterationsCap, c.MaxIterations)
	case c.CanvasSize <= 0 || c.CanvasSize > MaxCanvasSize:
		return invalid("canvas size must be in 1..%d, got %d", MaxCanvasSize, c.CanvasSize)
	case !finite(c.EdgeWidth) || c.EdgeWidth < 0:
		return invalid("edge width must be a non-negative number, got %v", c.EdgeWidth)
	}
	_, err := c.ConflictPolicy()
	return err
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// SuggestGridWidth returns the grid width paired with cx when only cx is
// chosen: the largest even number not above max(4, cx-4).
func SuggestGridWidth(cx int) int {
	w := max(4, cx-4)
	return w - w%2
}
