package tensor

import "github.com/sarchlab/tileconv/fixp"

// KernelSize is the only supported convolution window.
const KernelSize = 3

// FeatureMapReader gives read access to an activation tensor laid out as
// [channel][row][col].
type FeatureMapReader interface {
	Dims() (channels, height, width int)
	At(c, h, w int) fixp.Activation
}

// FeatureMapWriter gives write access to an activation tensor.
type FeatureMapWriter interface {
	Dims() (channels, height, width int)
	Set(c, h, w int, v fixp.Activation)
}

// WeightReader gives read access to a [oc][ic][kh][kw] weight tensor.
type WeightReader interface {
	Dims() (outChannels, inChannels, kh, kw int)
	At(oc, ic, kh, kw int) fixp.Weight
}

// BiasReader gives read access to a per-output-channel bias vector.
type BiasReader interface {
	Len() int
	At(oc int) fixp.Weight
}

// FeatureMap is an in-memory activation tensor.
type FeatureMap struct {
	d *Dense[fixp.Activation]
}

// NewFeatureMap allocates a zeroed channels x height x width feature map.
func NewFeatureMap(channels, height, width int) *FeatureMap {
	return &FeatureMap{
		d: NewDense[fixp.Activation]("FeatureMap", channels, height, width),
	}
}

// Dims returns the channel count, height and width.
func (f *FeatureMap) Dims() (int, int, int) {
	return f.d.shape[0], f.d.shape[1], f.d.shape[2]
}

// At returns the value at [c][h][w].
func (f *FeatureMap) At(c, h, w int) fixp.Activation {
	return f.d.At3(c, h, w)
}

// Set stores v at [c][h][w].
func (f *FeatureMap) Set(c, h, w int, v fixp.Activation) {
	f.d.Set3(c, h, w, v)
}

// Data exposes the flat [c][h][w] slice.
func (f *FeatureMap) Data() []fixp.Activation {
	return f.d.data
}

// Fill sets every element to v.
func (f *FeatureMap) Fill(v fixp.Activation) {
	f.d.Fill(v)
}

// Equal reports whether both maps have the same shape and values.
func (f *FeatureMap) Equal(o *FeatureMap) bool {
	c0, h0, w0 := f.Dims()
	c1, h1, w1 := o.Dims()
	if c0 != c1 || h0 != h1 || w0 != w1 {
		return false
	}

	for i, v := range f.d.data {
		if o.d.data[i] != v {
			return false
		}
	}

	return true
}

// WeightTensor holds [oc][ic][kh][kw] kernel weights.
type WeightTensor struct {
	d *Dense[fixp.Weight]
}

// NewWeightTensor allocates zeroed 3x3 weights.
func NewWeightTensor(outChannels, inChannels int) *WeightTensor {
	return &WeightTensor{
		d: NewDense[fixp.Weight]("WeightTensor",
			outChannels, inChannels, KernelSize, KernelSize),
	}
}

// Dims returns the four dimensions.
func (t *WeightTensor) Dims() (int, int, int, int) {
	return t.d.shape[0], t.d.shape[1], t.d.shape[2], t.d.shape[3]
}

// At returns weight[oc][ic][kh][kw].
func (t *WeightTensor) At(oc, ic, kh, kw int) fixp.Weight {
	return t.d.At4(oc, ic, kh, kw)
}

// Set stores weight[oc][ic][kh][kw].
func (t *WeightTensor) Set(oc, ic, kh, kw int, v fixp.Weight) {
	t.d.Set4(oc, ic, kh, kw, v)
}

// Data exposes the flat slice.
func (t *WeightTensor) Data() []fixp.Weight {
	return t.d.data
}

// BiasVector holds one bias per output channel.
type BiasVector struct {
	d *Dense[fixp.Weight]
}

// NewBiasVector allocates a zeroed bias vector.
func NewBiasVector(outChannels int) *BiasVector {
	return &BiasVector{d: NewDense[fixp.Weight]("BiasVector", outChannels)}
}

// Len returns the number of output channels.
func (b *BiasVector) Len() int {
	return b.d.shape[0]
}

// At returns bias[oc].
func (b *BiasVector) At(oc int) fixp.Weight {
	return b.d.At(oc)
}

// Set stores bias[oc].
func (b *BiasVector) Set(oc int, v fixp.Weight) {
	b.d.Set(v, oc)
}

// Data exposes the flat slice.
func (b *BiasVector) Data() []fixp.Weight {
	return b.d.data
}
