package maze

import (
	"errors"
	"fmt"
)

// DefaultRatio is the chance that a random decision keeps a wall. It makes
// mazes neither too open nor too corridor-like.
const DefaultRatio = 9.0 / 24.0

var (
	ErrInvalidRatio = errors.New("ratio must be within [0, 1]")
	ErrNilSource    = errors.New("random source is required")
)

// Option configures a Generator.
type Option func(*Generator) error

// WithRatio sets the chance that a random decision keeps a wall. Any value
// strictly between 0 and 1 yields a varied maze; 0 and 1 still produce
// perfect mazes, just degenerate ones.
func WithRatio(ratio float64) Option {
	return func(g *Generator) error {
		if ratio < 0 || ratio > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
		}
		g.ratio = ratio
		return nil
	}
}

// Generator carves perfect mazes one row at a time.
//
// The cells of the current row that are already connected form a class.
// Each class is a circular doubly-linked list kept in l (previous member)
// and r (next member), indexed by column. Lists stay in ascending cyclic
// order, so columns x and x+1 share a class exactly when l[x+1] == x.
// Cells whose bottom wall stays closed leave their list and start a new
// class in the next row.
type Generator struct {
	src   RandomSource
	ratio float64
	l     []int
	r     []int
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src RandomSource, opts ...Option) (*Generator, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	gen := &Generator{
		src:   src,
		ratio: DefaultRatio,
	}
	for _, opt := range opts {
		if err := opt(gen); err != nil {
			return nil, err
		}
	}
	return gen, nil
}

// Ratio returns the configured wall-keeping ratio.
func (gen *Generator) Ratio() float64 {
	return gen.ratio
}

// Carve turns grid into a perfect maze. Every wall bit of grid is rewritten;
// bits on the right and bottom border end up closed.
func (gen *Generator) Carve(grid *Grid) {
	width := grid.width
	gen.reset(width)

	last := grid.height - 1
	for y := 0; y < last; y++ {
		for x := 0; x < width; x++ {
			cell := &grid.cells[y][x]

			cell.RightWall = true
			if gen.separated(x) && gen.open() {
				gen.join(x)
				cell.RightWall = false
			}

			// The last list member of a class always keeps its way down,
			// otherwise the class would be cut off from the rows below.
			cell.BottomWall = false
			if gen.l[x] != x && gen.open() {
				gen.detach(x)
				cell.BottomWall = true
			}
		}
	}

	// Nothing below the last row: join every pair of classes still apart.
	for x := 0; x < width; x++ {
		cell := &grid.cells[last][x]
		cell.BottomWall = true
		cell.RightWall = true
		if gen.separated(x) {
			gen.join(x)
			cell.RightWall = false
		}
	}
}

// open draws once and reports whether the random decision goes through.
func (gen *Generator) open() bool {
	return gen.src.Float64() > gen.ratio
}

// reset makes every column of a width-wide row its own class.
func (gen *Generator) reset(width int) {
	if cap(gen.l) < width {
		gen.l = make([]int, width)
		gen.r = make([]int, width)
	}
	gen.l = gen.l[:width]
	gen.r = gen.r[:width]
	for i := range gen.l {
		gen.l[i] = i
		gen.r[i] = i
	}
}

// separated reports whether column x has a right neighbor in another class.
func (gen *Generator) separated(x int) bool {
	return x+1 < len(gen.l) && gen.l[x+1] != x
}

// join splices the class of x+1 right after x.
func (gen *Generator) join(x int) {
	l, r := gen.l, gen.r
	r[l[x+1]] = r[x]
	l[r[x]] = l[x+1]
	r[x] = x + 1
	l[x+1] = x
}

// detach removes x from its class and leaves it alone.
func (gen *Generator) detach(x int) {
	l, r := gen.l, gen.r
	r[l[x]] = r[x]
	l[r[x]] = l[x]
	r[x] = x
	l[x] = x
}
