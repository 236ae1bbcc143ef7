package dram

import (
	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

// FeatureMapView reads and writes a feature map stored in a Memory.
type FeatureMapView struct {
	mem    *Memory
	name   string
	region Region
	shape  [3]int
}

// Dims returns the channel count, height and width.
func (v *FeatureMapView) Dims() (int, int, int) {
	return v.shape[0], v.shape[1], v.shape[2]
}

// At reads one activation.
func (v *FeatureMapView) At(c, h, w int) fixp.Activation {
	return fixp.Activation(v.mem.readWord(v.addr(c, h, w)))
}

// Set writes one activation.
func (v *FeatureMapView) Set(c, h, w int, a fixp.Activation) {
	v.mem.writeWord(v.addr(c, h, w), uint16(a))
}

func (v *FeatureMapView) addr(c, h, w int) uint64 {
	if c < 0 || c >= v.shape[0] ||
		h < 0 || h >= v.shape[1] ||
		w < 0 || w >= v.shape[2] {
		panic(&tensor.BoundsError{
			Name:  v.name,
			Index: []int{c, h, w},
			Shape: v.shape[:],
		})
	}

	i := (c*v.shape[1]+h)*v.shape[2] + w

	return v.region.Base + uint64(i)*fixp.ActivationBytes
}

// WeightView reads a weight tensor stored in a Memory.
type WeightView struct {
	mem    *Memory
	region Region
	shape  [4]int
}

// Dims returns the output channels, input channels and kernel size.
func (v *WeightView) Dims() (int, int, int, int) {
	return v.shape[0], v.shape[1], v.shape[2], v.shape[3]
}

// At reads one weight.
func (v *WeightView) At(oc, ic, kh, kw int) fixp.Weight {
	s := v.shape
	if oc < 0 || oc >= s[0] || ic < 0 || ic >= s[1] ||
		kh < 0 || kh >= s[2] || kw < 0 || kw >= s[3] {
		panic(&tensor.BoundsError{
			Name:  "dram.weights",
			Index: []int{oc, ic, kh, kw},
			Shape: s[:],
		})
	}

	i := ((oc*s[1]+ic)*s[2]+kh)*s[3] + kw

	return fixp.Weight(v.mem.readWord(v.region.Base + uint64(i)*fixp.WeightBytes))
}

// BiasView reads a bias vector stored in a Memory.
type BiasView struct {
	mem    *Memory
	region Region
	n      int
}

// Len returns the number of output channels.
func (v *BiasView) Len() int {
	return v.n
}

// At reads the bias of output channel oc.
func (v *BiasView) At(oc int) fixp.Weight {
	if oc < 0 || oc >= v.n {
		panic(&tensor.BoundsError{
			Name:  "dram.bias",
			Index: []int{oc},
			Shape: []int{v.n},
		})
	}

	return fixp.Weight(v.mem.readWord(v.region.Base + uint64(oc)*fixp.WeightBytes))
}
