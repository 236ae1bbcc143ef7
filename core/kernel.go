package core

import (
	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

// Window places a tile in the layer: the global position of its top-left
// output element and the size of the whole feature map. Padding decisions
// are made on global coordinates.
type Window struct {
	Row, Col      int
	Height, Width int
}

// Convolve3x3 computes the padded 3x3 convolution of the input-channel block
// held in in for the first outChannels channels of the output block, over
// the first inChannels channels of the input block.
//
// For inBlockIndex 0 each output element is initialized to its bias plus the
// block's taps. For later blocks the taps are added to the partial sum
// already in out. It returns the number of multiply-accumulates executed.
func Convolve3x3(
	out OutputTileBuffer,
	in InputTileBuffer,
	w WeightBlockBuffer,
	b BiasBlockBuffer,
	win Window,
	inBlockIndex int,
	inChannels, outChannels int,
) int {
	th, tw := out.Dim(1), out.Dim(2)
	k := tensor.KernelSize

	macs := 0
	for oc := 0; oc < outChannels; oc++ {
		bias := fixp.BiasAccumulator(b.At(oc))

		for r := 0; r < th; r++ {
			for c := 0; c < tw; c++ {
				acc := bias
				if inBlockIndex > 0 {
					acc = out.At3(oc, r, c)
				}

				for ic := 0; ic < inChannels; ic++ {
					for fh := 0; fh < k; fh++ {
						gr := win.Row + r + fh - 1
						if gr < 0 || gr >= win.Height {
							continue
						}

						for fw := 0; fw < k; fw++ {
							gc := win.Col + c + fw - 1
							if gc < 0 || gc >= win.Width {
								continue
							}

							acc += fixp.Mul(in.At3(ic, r+fh, c+fw), w.At4(oc, ic, fh, fw))
							macs++
						}
					}
				}

				out.Set3(oc, r, c, acc)
			}
		}
	}

	return macs
}
