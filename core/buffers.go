package core

import (
	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

// InputTileBuffer holds one input-channel block of a tile plus its one-pixel
// halo: [inBlock][tileHeight+2][tileWidth+2]. Local position (r, c) maps to
// global position (origin.Row-1+r, origin.Col-1+c).
type InputTileBuffer struct {
	*tensor.Dense[fixp.Activation]
}

// WeightBlockBuffer holds [outBlock][inBlock][3][3] weights.
type WeightBlockBuffer struct {
	*tensor.Dense[fixp.Weight]
}

// BiasBlockBuffer holds the bias of each output channel of the block.
type BiasBlockBuffer struct {
	*tensor.Dense[fixp.Weight]
}

// OutputTileBuffer holds the [outBlock][tileHeight][tileWidth] partial sums
// at accumulator precision.
type OutputTileBuffer struct {
	*tensor.Dense[fixp.Accumulator]
}

// Buffers is the on-chip working set of one engine. It is allocated once per
// layer invocation and reused by every tile.
type Buffers struct {
	Input  InputTileBuffer
	Weight WeightBlockBuffer
	Bias   BiasBlockBuffer
	Output OutputTileBuffer
}

// NewBuffers allocates buffers for c. The caller must have validated c, so
// the buffers fit the budget.
func NewBuffers(c config.Config) *Buffers {
	k := tensor.KernelSize

	return &Buffers{
		Input: InputTileBuffer{tensor.NewDense[fixp.Activation](
			"InputTileBuffer", c.InBlock, c.TileHeight+2, c.TileWidth+2)},
		Weight: WeightBlockBuffer{tensor.NewDense[fixp.Weight](
			"WeightBlockBuffer", c.OutBlock, c.InBlock, k, k)},
		Bias: BiasBlockBuffer{tensor.NewDense[fixp.Weight](
			"BiasBlockBuffer", c.OutBlock)},
		Output: OutputTileBuffer{tensor.NewDense[fixp.Accumulator](
			"OutputTileBuffer", c.OutBlock, c.TileHeight, c.TileWidth)},
	}
}

// Bytes returns the on-chip storage in use.
func (b *Buffers) Bytes() int {
	return b.Input.Len()*fixp.ActivationBytes +
		b.Weight.Len()*fixp.WeightBytes +
		b.Bias.Len()*fixp.WeightBytes +
		b.Output.Len()*fixp.AccumulatorBytes
}
