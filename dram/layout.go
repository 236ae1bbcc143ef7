// Package dram models the bulk memory that holds a layer's operands.
//
// The input feature map, the weights, the bias and the output feature map
// are laid out one after another in a single akita storage, each region
// starting at an aligned address. Values are stored as little-endian 16-bit
// words in row-major order, the same order as the in-memory tensors.
package dram

import (
	"fmt"

	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

// DefaultAlignment is the region alignment used by NewLayout when none is
// given.
const DefaultAlignment uint64 = 4096

// Region is a contiguous address range.
type Region struct {
	Base uint64
	Size uint64
}

// End returns the first address after the region.
func (r Region) End() uint64 {
	return r.Base + r.Size
}

func (r Region) String() string {
	return fmt.Sprintf("[0x%x, 0x%x)", r.Base, r.End())
}

// Layout places the operands of a layer in memory.
type Layout struct {
	Layer     config.Layer
	Alignment uint64

	Input   Region
	Weights Region
	Bias    Region
	Output  Region
}

// NewLayout places the input, weights, bias and output of l, in that order,
// at multiples of alignment. An alignment of 0 means DefaultAlignment.
func NewLayout(l config.Layer, alignment uint64) Layout {
	if alignment == 0 {
		alignment = DefaultAlignment
	}

	if alignment&(alignment-1) != 0 {
		panic(fmt.Sprintf("alignment %d is not a power of two", alignment))
	}

	lay := Layout{Layer: l, Alignment: alignment}

	next := uint64(0)
	place := func(elements, elemBytes int) Region {
		r := Region{Base: next, Size: uint64(elements * elemBytes)}
		next = align(r.End(), alignment)
		return r
	}

	k := tensor.KernelSize
	lay.Input = place(l.InChannels*l.Height*l.Width, fixp.ActivationBytes)
	lay.Weights = place(l.OutChannels*l.InChannels*k*k, fixp.WeightBytes)
	lay.Bias = place(l.OutChannels, fixp.WeightBytes)
	lay.Output = place(l.OutChannels*l.Height*l.Width, fixp.ActivationBytes)

	return lay
}

// Size returns the number of bytes needed to hold every region.
func (l Layout) Size() uint64 {
	return align(l.Output.End(), l.Alignment)
}

func align(addr, alignment uint64) uint64 {
	return (addr + alignment - 1) &^ (alignment - 1)
}
