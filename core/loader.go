package core

import (
	"github.com/sarchlab/tileconv/tensor"
)

// LoadInputTile copies the input-channel block coord.InBlock of the tile at
// (coord.Row, coord.Col), including the halo, from src into dst. Halo
// positions outside the feature map are neither read nor written; the
// kernel treats them as zero padding. It returns the number of elements
// read from src.
func LoadInputTile(
	dst InputTileBuffer,
	src tensor.FeatureMapReader,
	coord TileCoord,
) int {
	inBlock := dst.Dim(0)
	th, tw := dst.Dim(1)-2, dst.Dim(2)-2
	_, height, width := src.Dims()

	row0 := coord.Row*th - 1
	col0 := coord.Col*tw - 1
	ch0 := coord.InBlock * inBlock

	loaded := 0
	for c := 0; c < inBlock; c++ {
		for r := 0; r < th+2; r++ {
			gr := row0 + r
			if gr < 0 || gr >= height {
				continue
			}

			for col := 0; col < tw+2; col++ {
				gc := col0 + col
				if gc < 0 || gc >= width {
					continue
				}

				dst.Set3(c, r, col, src.At(ch0+c, gr, gc))
				loaded++
			}
		}
	}

	return loaded
}

// LoadWeightsAndBias copies the weights of output-channel block
// coord.OutBlock and input-channel block coord.InBlock into dstW, and the
// bias of the output-channel block into dstB. It returns the number of
// elements read.
func LoadWeightsAndBias(
	dstW WeightBlockBuffer,
	dstB BiasBlockBuffer,
	srcW tensor.WeightReader,
	srcB tensor.BiasReader,
	coord TileCoord,
) int {
	outBlock, inBlock := dstW.Dim(0), dstW.Dim(1)
	oc0 := coord.OutBlock * outBlock
	ic0 := coord.InBlock * inBlock

	loaded := 0
	for oc := 0; oc < outBlock; oc++ {
		for ic := 0; ic < inBlock; ic++ {
			for kh := 0; kh < tensor.KernelSize; kh++ {
				for kw := 0; kw < tensor.KernelSize; kw++ {
					dstW.Set4(oc, ic, kh, kw, srcW.At(oc0+oc, ic0+ic, kh, kw))
					loaded++
				}
			}
		}

		dstB.Set(srcB.At(oc0+oc), oc)
		loaded++
	}

	return loaded
}
