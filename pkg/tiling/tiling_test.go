package tiling_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling"
	"github.com/matzehuels/rectile/pkg/tiling/preset"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*tiling.Config)
		ok     bool
	}{
		{"defaults", func(*tiling.Config) {}, true},
		{"cx not multiple of 4", func(c *tiling.Config) { c.CX = 30 }, false},
		{"cx zero", func(c *tiling.Config) { c.CX = 0 }, false},
		{"odd grid width", func(c *tiling.Config) { c.GridWidth = 7 }, false},
		{"grid width equals cx", func(c *tiling.Config) { c.GridWidth = 32 }, false},
		{"grid width zero", func(c *tiling.Config) { c.GridWidth = 0 }, false},
		{"max side zero", func(c *tiling.Config) { c.MaxSide = 0 }, false},
		{"no iterations", func(c *tiling.Config) { c.MaxIterations = 0 }, false},
		{"no canvas", func(c *tiling.Config) { c.CanvasSize = 0 }, false},
		{"negative edge", func(c *tiling.Config) { c.EdgeWidth = -1 }, false},
		{"zero edge", func(c *tiling.Config) { c.EdgeWidth = 0 }, true},
		{"bad conflict policy", func(c *tiling.Config) { c.Conflicts = "maybe" }, false},
		{"cx at limit", func(c *tiling.Config) { c.CX = tiling.MaxCX }, true},
		{"cx above limit", func(c *tiling.Config) { c.CX = tiling.MaxCX + 4 }, false},
		{"huge cx", func(c *tiling.Config) { c.CX = 1 << 22 }, false},
		{"iterations above cap", func(c *tiling.Config) { c.MaxIterations = tiling.MaxIterationsCap + 1 }, false},
		{"canvas above limit", func(c *tiling.Config) { c.CanvasSize = tiling.MaxCanvasSize + 1 }, false},
		{"nan max side", func(c *tiling.Config) { c.MaxSide = math.NaN() }, false},
		{"infinite max side", func(c *tiling.Config) { c.MaxSide = math.Inf(1) }, false},
		{"nan edge", func(c *tiling.Config) { c.EdgeWidth = math.NaN() }, false},
		{"infinite edge", func(c *tiling.Config) { c.EdgeWidth = math.Inf(1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tiling.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "got %v", err)
		})
	}
}

func TestConfig_Derived(t *testing.T) {
	cfg := tiling.DefaultConfig()
	assert.Equal(t, 32, cfg.CY())
	assert.Equal(t, 14, cfg.HalfWidth())
	assert.Equal(t, 13, cfg.TravelHalfWidth())
	assert.Equal(t, 64, cfg.MaxDim())
}

func TestSuggestGridWidth(t *testing.T) {
	tests := []struct{ cx, want int }{
		{4, 4},
		{8, 4},
		{12, 8},
		{32, 28},
		{33, 28},
	}
	for _, tt := range tests {
		if got := tiling.SuggestGridWidth(tt.cx); got != tt.want {
			t.Errorf("SuggestGridWidth(%d) = %d, want %d", tt.cx, got, tt.want)
		}
	}
}

func TestValidateSeeds(t *testing.T) {
	assert.True(t, errors.Is(tiling.ValidateSeeds(nil), errors.ErrCodeInvalidSeed))
	assert.True(t, errors.Is(tiling.ValidateSeeds([]tiling.Seed{{Width: 0, Height: 2}}), errors.ErrCodeInvalidSeed))
	assert.True(t, errors.Is(tiling.ValidateSeeds([]tiling.Seed{{Width: 2, Height: -1}}), errors.ErrCodeInvalidSeed))
	assert.NoError(t, tiling.ValidateSeeds([]tiling.Seed{{Width: 2, Height: 1}}))

	for _, bad := range []tiling.Seed{
		{Width: math.NaN(), Height: 1},
		{Width: 1, Height: math.NaN()},
		{Width: math.Inf(1), Height: 1},
		{Width: 1, Height: math.Inf(-1)},
	} {
		err := tiling.ValidateSeeds([]tiling.Seed{bad})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidSeed), "seed %vx%v: got %v", bad.Width, bad.Height, err)
	}
}

func TestGenerate_RejectsOversizedGrid(t *testing.T) {
	p, err := preset.Lookup("classic")
	require.NoError(t, err)

	cfg := tiling.DefaultConfig()
	cfg.CX = 1 << 22
	_, err = tiling.Generate(cfg, p.Seeds)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "got %v", err)
}

func classicConfig() tiling.Config {
	cfg := tiling.DefaultConfig()
	cfg.CX = 32
	cfg.GridWidth = 8
	return cfg
}

func TestGenerate_Classic(t *testing.T) {
	p, err := preset.Lookup("classic")
	require.NoError(t, err)

	res, err := tiling.Generate(classicConfig(), p.Seeds)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.Iterations, 50)
	assert.Empty(t, res.Conflicts)
	require.Len(t, res.Rectangles, 33)

	center := res.Rectangles[0]
	assert.Equal(t, 0, center.Col)
	assert.Equal(t, 0, center.Row)
	assert.Equal(t, [4]float64{0, 9, 0, 14}, [4]float64{center.Left, center.Right, center.Bottom, center.Top})

	th := classicConfig().TravelHalfWidth()
	for _, r := range res.Rectangles {
		assert.Greater(t, r.Width, 0.0)
		assert.Greater(t, r.Height, 0.0)
		assert.InDelta(t, r.Width, r.Right-r.Left, 1e-9)
		assert.InDelta(t, r.Height, r.Top-r.Bottom, 1e-9)
		assert.LessOrEqual(t, r.Col, th)
		assert.GreaterOrEqual(t, r.Col, -th)
		assert.LessOrEqual(t, r.Row, th)
		assert.GreaterOrEqual(t, r.Row, -th)
	}
	assertNoOverlap(t, res.Rectangles)
}

func TestGenerate_DefaultsLargeGrid(t *testing.T) {
	p, _ := preset.Lookup("classic")
	res, err := tiling.Generate(tiling.DefaultConfig(), p.Seeds)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Len(t, res.Rectangles, 245)
	assertNoOverlap(t, res.Rectangles)
}

func TestGenerate_SquarePresetIsSquared(t *testing.T) {
	p, _ := preset.Lookup("square")
	res, err := tiling.Generate(classicConfig(), p.Seeds)
	require.NoError(t, err)
	for _, r := range res.Rectangles {
		assert.Equal(t, r.Width, r.Height, "rectangle at (%d, %d)", r.Col, r.Row)
	}
	assertNoOverlap(t, res.Rectangles)
}

func TestGenerate_IterationCapIsWarning(t *testing.T) {
	p, _ := preset.Lookup("classic")
	cfg := tiling.DefaultConfig()
	cfg.MaxIterations = 3

	res, err := tiling.Generate(cfg, p.Seeds)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	assert.NotEmpty(t, res.Rectangles)
}

func TestGenerate_Errors(t *testing.T) {
	good := []tiling.Seed{{X: 0, Y: 0, Width: 2, Height: 2}}

	tests := []struct {
		name  string
		cfg   tiling.Config
		seeds []tiling.Seed
		code  errors.Code
	}{
		{"invalid config", tiling.Config{CX: 5}, good, errors.ErrCodeInvalidConfiguration},
		{"no seeds", classicConfig(), nil, errors.ErrCodeInvalidSeed},
		{"out of bounds", classicConfig(), []tiling.Seed{{X: 40, Y: 0, Width: 1, Height: 1}}, errors.ErrCodeSeedOutOfBounds},
		{"no center", classicConfig(), []tiling.Seed{{X: 1, Y: 0, Width: 1, Height: 1}}, errors.ErrCodeMissingCenterDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tiling.Generate(tt.cfg, tt.seeds)
			assert.True(t, errors.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}
}

func TestGenerate_SingleSeed(t *testing.T) {
	res, err := tiling.Generate(classicConfig(), []tiling.Seed{{Width: 2, Height: 3}})
	require.NoError(t, err)
	require.Len(t, res.Rectangles, 1)
	assert.Equal(t, 0, res.Iterations)
	assert.True(t, res.Converged)
}

func assertNoOverlap(t *testing.T, rects []tiling.Rectangle) {
	t.Helper()
	for a := 0; a < len(rects); a++ {
		for b := a + 1; b < len(rects); b++ {
			ra, rb := rects[a], rects[b]
			if ra.Left < rb.Right && rb.Left < ra.Right && ra.Bottom < rb.Top && rb.Bottom < ra.Top {
				t.Errorf("(%d, %d) overlaps (%d, %d)", ra.Col, ra.Row, rb.Col, rb.Row)
			}
		}
	}
}

func ExampleGenerate() {
	p, _ := preset.Lookup("classic")
	cfg := tiling.DefaultConfig()
	cfg.GridWidth = 8

	res, err := tiling.Generate(cfg, p.Seeds)
	if err != nil {
		fmt.Println(err)
		return
	}
	c := res.Rectangles[0]
	fmt.Printf("%d rectangles, center %gx%g at (%g, %g)\n", len(res.Rectangles), c.Width, c.Height, c.Left, c.Bottom)
	// Output: 33 rectangles, center 9x14 at (0, 0)
}
