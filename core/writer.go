package core

import (
	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

// StoreOutputTile narrows the finished partial sums in src and writes them to
// the region of dst covered by the tile at (coord.Row, coord.Col) and output
// block coord.OutBlock. It returns the number of saturated elements. Under
// fixp.OverflowFail the first out-of-range element aborts the store with an
// *fixp.OverflowError.
func StoreOutputTile(
	dst tensor.FeatureMapWriter,
	src OutputTileBuffer,
	coord TileCoord,
	policy fixp.OverflowPolicy,
) (int, error) {
	outBlock, th, tw := src.Dim(0), src.Dim(1), src.Dim(2)
	oc0 := coord.OutBlock * outBlock
	row0 := coord.Row * th
	col0 := coord.Col * tw

	saturated := 0
	for oc := 0; oc < outBlock; oc++ {
		for r := 0; r < th; r++ {
			for c := 0; c < tw; c++ {
				v, sat, err := policy.Resolve(
					src.At3(oc, r, c), oc0+oc, row0+r, col0+c)
				if err != nil {
					return saturated, err
				}
				if sat {
					saturated++
				}

				dst.Set(oc0+oc, row0+r, col0+c, v)
			}
		}
	}

	return saturated, nil
}
