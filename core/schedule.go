package core

import (
	"fmt"

	"github.com/sarchlab/tileconv/config"
)

// TileCoord identifies the data resident on chip: a spatial tile and the
// output and input channel blocks.
type TileCoord struct {
	Row, Col int
	OutBlock int
	InBlock  int
}

func (c TileCoord) String() string {
	return fmt.Sprintf("tile(%d,%d) ob=%d ib=%d",
		c.Row, c.Col, c.OutBlock, c.InBlock)
}

// StepKind is the kind of work a step performs.
type StepKind int

const (
	StepLoadInput StepKind = iota
	StepLoadParams
	StepCompute
	StepStore
)

// Name returns the name of the step kind.
func (k StepKind) Name() string {
	switch k {
	case StepLoadInput:
		return "LoadInput"
	case StepLoadParams:
		return "LoadParams"
	case StepCompute:
		return "Compute"
	case StepStore:
		return "Store"
	default:
		panic("invalid step kind")
	}
}

func (k StepKind) String() string {
	return k.Name()
}

// Step is one unit of the tiled computation.
type Step struct {
	Kind  StepKind
	Coord TileCoord
}

// Cursor walks the steps of a layer in execution order. The loops are, from
// outer to inner, tile row, tile column, output block and input block. Each
// input block is loaded and computed in increasing order, and the output
// block is stored once after its last input block.
type Cursor struct {
	grid config.Grid

	rowBegin, rowEnd int
	colBegin, colEnd int

	coord TileCoord
	kind  StepKind
	done  bool
}

// NewCursor walks every tile of grid.
func NewCursor(grid config.Grid) *Cursor {
	return newCursor(grid, 0, grid.Rows, 0, grid.Cols)
}

// NewTileCursor walks only the tile at (row, col).
func NewTileCursor(grid config.Grid, row, col int) *Cursor {
	if row < 0 || row >= grid.Rows || col < 0 || col >= grid.Cols {
		panic(fmt.Sprintf("tile (%d,%d) outside %dx%d grid",
			row, col, grid.Rows, grid.Cols))
	}

	return newCursor(grid, row, row+1, col, col+1)
}

func newCursor(grid config.Grid, rowBegin, rowEnd, colBegin, colEnd int) *Cursor {
	return &Cursor{
		grid:     grid,
		rowBegin: rowBegin,
		rowEnd:   rowEnd,
		colBegin: colBegin,
		colEnd:   colEnd,
		coord:    TileCoord{Row: rowBegin, Col: colBegin},
		kind:     StepLoadInput,
		done: rowBegin >= rowEnd || colBegin >= colEnd ||
			grid.OutBlocks <= 0 || grid.InBlocks <= 0,
	}
}

// Next returns the next step, or false when the walk is over.
func (c *Cursor) Next() (Step, bool) {
	if c.done {
		return Step{}, false
	}

	s := Step{Kind: c.kind, Coord: c.coord}
	c.advance()

	return s, true
}

func (c *Cursor) advance() {
	switch c.kind {
	case StepLoadInput:
		c.kind = StepLoadParams
	case StepLoadParams:
		c.kind = StepCompute
	case StepCompute:
		if c.coord.InBlock+1 < c.grid.InBlocks {
			c.coord.InBlock++
			c.kind = StepLoadInput
			return
		}
		c.kind = StepStore
	case StepStore:
		c.kind = StepLoadInput
		c.coord.InBlock = 0
		c.nextOutBlock()
	}
}

func (c *Cursor) nextOutBlock() {
	c.coord.OutBlock++
	if c.coord.OutBlock < c.grid.OutBlocks {
		return
	}

	c.coord.OutBlock = 0
	c.coord.Col++
	if c.coord.Col < c.colEnd {
		return
	}

	c.coord.Col = c.colBegin
	c.coord.Row++
	if c.coord.Row < c.rowEnd {
		return
	}

	c.done = true
}

// Schedule returns every step of the layer in execution order.
func Schedule(grid config.Grid) []Step {
	n := grid.Tiles() * grid.OutBlocks * (3*grid.InBlocks + 1)
	steps := make([]Step, 0, max(n, 0))

	cur := NewCursor(grid)
	for s, ok := cur.Next(); ok; s, ok = cur.Next() {
		steps = append(steps, s)
	}

	return steps
}
