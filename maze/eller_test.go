package maze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// components counts the connected parts of the passage graph of g.
func components(g *Grid) int {
	seen := make(map[CellPosition]bool, g.width*g.height)
	count := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			root := CellPosition{X: x, Y: y}
			if seen[root] {
				continue
			}
			count++
			seen[root] = true
			queue := []CellPosition{root}
			for len(queue) > 0 {
				current := queue[0]
				queue = queue[1:]
				for _, dir := range directions {
					next := CellPosition{X: current.X + dir.X, Y: current.Y + dir.Y}
					if g.Connected(current, next) && !seen[next] {
						seen[next] = true
						queue = append(queue, next)
					}
				}
			}
		}
	}
	return count
}

func TestGeneratorSpanningTree(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {2, 2}, {3, 5}, {8, 8}, {17, 11}, {40, 25}}
	for _, size := range sizes {
		for seed := int64(0); seed < 20; seed++ {
			name := fmt.Sprintf("%dx%d seed %d", size[0], size[1], seed)
			t.Run(name, func(t *testing.T) {
				g, err := New(size[0], size[1], NewSource(seed))
				require.NoError(t, err)

				assert.Equal(t, size[0]*size[1]-1, g.Passages())
				assert.Equal(t, 1, components(g))
				assert.NoError(t, Validate(g))
			})
		}
	}
}

func TestGeneratorBorders(t *testing.T) {
	g, err := New(9, 6, NewSource(7))
	require.NoError(t, err)

	for y := 0; y < g.Height(); y++ {
		right, _ := g.WallRight(g.Width()-1, y)
		assert.True(t, right, "row %d right border", y)
	}
	for x := 0; x < g.Width(); x++ {
		bottom, _ := g.WallBottom(x, g.Height()-1)
		assert.True(t, bottom, "column %d bottom border", x)
	}
}

func TestGeneratorAcyclic(t *testing.T) {
	g, err := New(6, 5, NewSource(3))
	require.NoError(t, err)

	// Closing any single passage must split the maze in exactly two parts.
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x+1 < g.Width() && !g.cells[y][x].RightWall {
				g.cells[y][x].RightWall = true
				assert.Equal(t, 2, components(g), "right passage at (%d, %d)", x, y)
				g.cells[y][x].RightWall = false
			}
			if y+1 < g.Height() && !g.cells[y][x].BottomWall {
				g.cells[y][x].BottomWall = true
				assert.Equal(t, 2, components(g), "bottom passage at (%d, %d)", x, y)
				g.cells[y][x].BottomWall = false
			}
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	first, err := New(5, 5, NewSource(42))
	require.NoError(t, err)
	second, err := New(5, 5, NewSource(42))
	require.NoError(t, err)

	a, err := first.MarshalText()
	require.NoError(t, err)
	b, err := second.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := New(20, 20, NewSource(43))
	require.NoError(t, err)
	again, err := New(20, 20, NewSource(43))
	require.NoError(t, err)
	assert.Equal(t, other.Rows(), again.Rows())
}

func TestGeneratorForcedDecisions(t *testing.T) {
	t.Run("single cell needs no passage", func(t *testing.T) {
		g, err := New(1, 1, constSource(0.9))
		require.NoError(t, err)
		assert.Equal(t, 0, g.Passages())
		assert.Equal(t, []string{"3"}, g.Rows())
	})

	t.Run("single row is merged completely", func(t *testing.T) {
		// No draw can keep the two cells apart on the last row.
		g, err := New(2, 1, constSource(0))
		require.NoError(t, err)

		right, err := g.WallRight(0, 0)
		require.NoError(t, err)
		assert.False(t, right)
		assert.Equal(t, []string{"23"}, g.Rows())
	})

	t.Run("single column keeps every way down", func(t *testing.T) {
		g, err := New(1, 4, constSource(0.99))
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "1", "1", "3"}, g.Rows())
	})

	t.Run("draws always open", func(t *testing.T) {
		g, err := New(3, 3, constSource(0.99))
		require.NoError(t, err)
		assert.Equal(t, []string{"221", "221", "223"}, g.Rows())
	})

	t.Run("draws never open", func(t *testing.T) {
		g, err := New(3, 3, constSource(0))
		require.NoError(t, err)
		assert.Equal(t, []string{"111", "111", "223"}, g.Rows())
	})

	t.Run("lone class member is forced down", func(t *testing.T) {
		// Row 0: join 0-1, keep 0 down, close 1, leave 1-2 apart; 2 is
		// alone so it goes down without a draw.
		src := &scriptedSource{draws: []float64{0.9, 0.1, 0.1, 0.9}}
		g, err := New(3, 2, src)
		require.NoError(t, err)

		assert.Equal(t, []string{"031", "223"}, g.Rows())
		assert.Equal(t, 4, src.calls)
		assert.NoError(t, Validate(g))
	})
}

func TestGeneratorOptions(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		_, err := NewGenerator(nil)
		assert.ErrorIs(t, err, ErrNilSource)
	})

	t.Run("ratio out of range", func(t *testing.T) {
		_, err := NewGenerator(NewSource(1), WithRatio(1.5))
		assert.ErrorIs(t, err, ErrInvalidRatio)
		_, err = New(3, 3, NewSource(1), WithRatio(-0.1))
		assert.ErrorIs(t, err, ErrInvalidRatio)
	})

	t.Run("default ratio", func(t *testing.T) {
		gen, err := NewGenerator(NewSource(1))
		require.NoError(t, err)
		assert.InDelta(t, DefaultRatio, gen.Ratio(), 1e-12)
	})

	t.Run("degenerate ratios stay perfect", func(t *testing.T) {
		for _, ratio := range []float64{0, 0.05, 0.5, 0.95, 1} {
			g, err := New(12, 9, NewSource(11), WithRatio(ratio))
			require.NoError(t, err)
			assert.NoError(t, Validate(g), "ratio %v", ratio)
		}
	})

	t.Run("generator is reusable across sizes", func(t *testing.T) {
		gen, err := NewGenerator(NewSource(5))
		require.NoError(t, err)

		for _, size := range [][2]int{{10, 4}, {3, 8}, {12, 12}} {
			g, err := NewGrid(size[0], size[1])
			require.NoError(t, err)
			gen.Carve(g)
			assert.NoError(t, Validate(g))
		}
	})
}
