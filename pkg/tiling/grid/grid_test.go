package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling/grid"
)

func TestNew_DefaultCells(t *testing.T) {
	g := grid.New(8)
	require.Equal(t, 16, g.Dim())

	cx, cy := g.Center()
	assert.Equal(t, 8, cx)
	assert.Equal(t, 8, cy)

	for i := 0; i < g.Dim(); i++ {
		for j := 0; j < g.Dim(); j++ {
			c := g.At(i, j)
			require.NotNil(t, c)
			assert.False(t, c.WidthKnown || c.HeightKnown || c.Drawn || c.Discovered || c.Placed())
		}
	}
}

func TestAt_OutOfRange(t *testing.T) {
	g := grid.New(4)
	assert.Nil(t, g.At(-1, 0))
	assert.Nil(t, g.At(0, -1))
	assert.Nil(t, g.At(8, 0))
	assert.Nil(t, g.At(0, 8))
	assert.NotNil(t, g.At(7, 7))
}

func TestIndexOffsetRoundTrip(t *testing.T) {
	g := grid.New(12)
	i, j := g.Index(-3, 5)
	assert.Equal(t, 9, i)
	assert.Equal(t, 17, j)
	x, y := g.Offset(i, j)
	assert.Equal(t, -3, x)
	assert.Equal(t, 5, y)
}

func TestSeed(t *testing.T) {
	g := grid.New(8)
	err := g.Seed([]grid.Seed{{X: 0, Y: 0, Width: 9, Height: 14}, {X: 1, Y: -1, Width: 3, Height: 10}})
	require.NoError(t, err)

	c := g.CenterCell()
	assert.True(t, c.Complete())
	assert.Equal(t, 9.0, c.Width)
	assert.Equal(t, 14.0, c.Height)

	c = g.At(g.Index(1, -1))
	assert.Equal(t, 3.0, c.Value(grid.Width))
	assert.Equal(t, 10.0, c.Value(grid.Height))
	assert.Equal(t, 2, g.CountKnown(grid.Width))
}

func TestSeed_OutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		seed grid.Seed
	}{
		{"far east", grid.Seed{X: 8, Y: 0, Width: 1, Height: 1}},
		{"far west", grid.Seed{X: -9, Y: 0, Width: 1, Height: 1}},
		{"far north", grid.Seed{X: 0, Y: 8, Width: 1, Height: 1}},
		{"far south", grid.Seed{X: 0, Y: -9, Width: 1, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.New(8)
			err := g.Seed([]grid.Seed{tt.seed})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeSeedOutOfBounds), "got %v", err)
		})
	}
}

func TestSeed_EdgeOffsetsAccepted(t *testing.T) {
	g := grid.New(8)
	err := g.Seed([]grid.Seed{{X: -8, Y: -8, Width: 1, Height: 1}, {X: 7, Y: 7, Width: 1, Height: 1}})
	assert.NoError(t, err)
}

func TestCellLearnIsMonotonic(t *testing.T) {
	var c grid.Cell
	assert.True(t, c.Learn(grid.Width, 4))
	assert.False(t, c.Learn(grid.Width, 7))
	assert.Equal(t, 4.0, c.Width)
	assert.False(t, c.Drawable())

	assert.True(t, c.Learn(grid.Height, -2))
	assert.True(t, c.Complete())
	assert.False(t, c.Drawable())
}

func TestCellPlacement(t *testing.T) {
	var c grid.Cell
	_, ok := c.Bounds()
	assert.False(t, ok)

	// Negative coordinates are legitimate placements.
	c.Place(grid.Bounds{Top: -1, Right: -2, Bottom: -5, Left: -6})
	b, ok := c.Bounds()
	require.True(t, ok)
	assert.Equal(t, 4.0, b.Width())
	assert.Equal(t, 4.0, b.Height())
}

func TestCloneAndEqual(t *testing.T) {
	g := grid.New(4)
	require.NoError(t, g.Seed([]grid.Seed{{X: 0, Y: 0, Width: 2, Height: 3}}))

	c := g.Clone()
	assert.True(t, g.Equal(c))

	c.At(0, 0).Learn(grid.Width, 1)
	assert.False(t, g.Equal(c))
	assert.False(t, g.At(0, 0).WidthKnown, "clone must not alias the original")
}
