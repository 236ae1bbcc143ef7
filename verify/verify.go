// Package verify provides the correctness oracle for the tiled convolution
// engine.
//
// The package implements two complementary pieces:
//
// 1. Reference model (ReferenceConv): a direct, untiled, padded 3x3
// convolution with bias. It shares nothing with the tiled engine except the
// fixed-point types, so it is an independent oracle.
//
// 2. Comparison and report (Compare, GenerateReport): element-by-element
// comparison of an engine result against the oracle, rendered as a table.
//
// # Usage Example
//
//	want, _, err := verify.ReferenceConv(input, weights, bias, fixp.OverflowSaturate)
//	if err != nil {
//	    panic(err)
//	}
//
//	report := verify.GenerateReport("tiled", got, want)
//	report.WriteReport(os.Stdout)
//	if !report.OK() {
//	    panic("tiled result diverged from the reference")
//	}
package verify

import (
	"fmt"

	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

// ReferenceConv computes
//
//	out[oc][oh][ow] = bias[oc] + sum over ic, fh, fw of
//	    pad(in, ic, oh+fh-1, ow+fw-1) * w[oc][ic][fh][fw]
//
// where pad is zero outside the feature map. Terms are summed at accumulator
// precision in ic, fh, fw order, the first term seeding the sum with the
// bias, and each sum is narrowed once under policy. It returns the output
// and the number of saturated elements.
func ReferenceConv(
	input tensor.FeatureMapReader,
	weights tensor.WeightReader,
	bias tensor.BiasReader,
	policy fixp.OverflowPolicy,
) (*tensor.FeatureMap, int, error) {
	inC, height, width := input.Dims()
	outC, wIn, kh, kw := weights.Dims()
	if wIn != inC || kh != tensor.KernelSize || kw != tensor.KernelSize ||
		bias.Len() != outC {
		return nil, 0, fmt.Errorf(
			"reference conv: input %dx%dx%d, weights %dx%dx%dx%d and bias %d disagree",
			inC, height, width, outC, wIn, kh, kw, bias.Len())
	}

	out := tensor.NewFeatureMap(outC, height, width)
	saturated := 0

	for oc := 0; oc < outC; oc++ {
		for oh := 0; oh < height; oh++ {
			for ow := 0; ow < width; ow++ {
				var acc fixp.Accumulator

				for ic := 0; ic < inC; ic++ {
					for fh := 0; fh < tensor.KernelSize; fh++ {
						for fw := 0; fw < tensor.KernelSize; fw++ {
							term := fixp.Mul(
								pad(input, ic, oh+fh-1, ow+fw-1),
								weights.At(oc, ic, fh, fw))

							if ic == 0 && fh == 0 && fw == 0 {
								acc = fixp.BiasAccumulator(bias.At(oc)) + term
							} else {
								acc += term
							}
						}
					}
				}

				v, sat, err := policy.Resolve(acc, oc, oh, ow)
				if err != nil {
					return nil, saturated, err
				}
				if sat {
					saturated++
				}

				out.Set(oc, oh, ow, v)
			}
		}
	}

	return out, saturated, nil
}

// pad reads in[c][r][col], or zero when (r, col) is outside the map.
func pad(in tensor.FeatureMapReader, c, r, col int) fixp.Activation {
	_, height, width := in.Dims()
	if r < 0 || r >= height || col < 0 || col >= width {
		return 0
	}

	return in.At(c, r, col)
}

// Taps returns how many of the 9 kernel taps of output position (oh, ow) fall
// inside a height x width map.
func Taps(height, width, oh, ow int) int {
	n := 0
	for fh := 0; fh < tensor.KernelSize; fh++ {
		for fw := 0; fw < tensor.KernelSize; fw++ {
			r, c := oh+fh-1, ow+fw-1
			if r >= 0 && r < height && c >= 0 && c < width {
				n++
			}
		}
	}

	return n
}
