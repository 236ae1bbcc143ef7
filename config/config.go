// Package config holds the tiling parameters of the convolution engine and
// checks them against the layer shape and the on-chip buffer budget.
package config

import (
	"fmt"

	"github.com/sarchlab/tileconv/fixp"
)

// Budget is the fixed capacity of the on-chip buffers, in elements per
// dimension. The input buffer holds a tile plus its one-pixel halo.
type Budget struct {
	InBufDepth   int
	InBufHeight  int
	InBufWidth   int
	OutBufDepth  int
	OutBufHeight int
	OutBufWidth  int
}

// DefaultBudget matches the conv1 buffers of the reference accelerator.
var DefaultBudget = Budget{
	InBufDepth:   3,
	InBufHeight:  10,
	InBufWidth:   10,
	OutBufDepth:  4,
	OutBufHeight: 8,
	OutBufWidth:  8,
}

// LayerBudget returns a budget large enough to hold the whole layer on chip.
func LayerBudget(l Layer) Budget {
	return Budget{
		InBufDepth:   l.InChannels,
		InBufHeight:  l.Height + 2,
		InBufWidth:   l.Width + 2,
		OutBufDepth:  l.OutChannels,
		OutBufHeight: l.Height,
		OutBufWidth:  l.Width,
	}
}

// Bytes returns the on-chip storage the budget reserves: the input tile, the
// weight and bias blocks, and the wide output partial sums.
func (b Budget) Bytes() int {
	in := b.InBufDepth * b.InBufHeight * b.InBufWidth * fixp.ActivationBytes
	wt := b.OutBufDepth * b.InBufDepth * 9 * fixp.WeightBytes
	bias := b.OutBufDepth * fixp.WeightBytes
	out := b.OutBufDepth * b.OutBufHeight * b.OutBufWidth * fixp.AccumulatorBytes

	return in + wt + bias + out
}

// Config selects the tile and channel-block sizes.
type Config struct {
	TileHeight int
	TileWidth  int
	OutBlock   int
	InBlock    int
	Budget     Budget
	Overflow   fixp.OverflowPolicy
}

// Default returns the conv1 configuration: 8x8 tiles, 4 output channels and
// all 3 input channels per block.
func Default() Config {
	return Config{
		TileHeight: 8,
		TileWidth:  8,
		OutBlock:   4,
		InBlock:    3,
		Budget:     DefaultBudget,
		Overflow:   fixp.OverflowSaturate,
	}
}

// WithTile sets the spatial tile size.
func (c Config) WithTile(height, width int) Config {
	c.TileHeight = height
	c.TileWidth = width
	return c
}

// WithBlocks sets the output and input channel block sizes.
func (c Config) WithBlocks(out, in int) Config {
	c.OutBlock = out
	c.InBlock = in
	return c
}

// WithBudget sets the buffer budget.
func (c Config) WithBudget(b Budget) Config {
	c.Budget = b
	return c
}

// WithOverflow sets the overflow policy.
func (c Config) WithOverflow(p fixp.OverflowPolicy) Config {
	c.Overflow = p
	return c
}

// Grid returns how the configuration partitions l. It assumes c is valid
// for l.
func (c Config) Grid(l Layer) Grid {
	return Grid{
		Rows:      l.Height / c.TileHeight,
		Cols:      l.Width / c.TileWidth,
		OutBlocks: l.OutChannels / c.OutBlock,
		InBlocks:  l.InChannels / c.InBlock,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("tile %dx%d, out block %d, in block %d, overflow %s",
		c.TileHeight, c.TileWidth, c.OutBlock, c.InBlock, c.Overflow)
}
