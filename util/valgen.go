// Some helpers using closures to generate values
package valgen

import (
	"math/rand"

	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

func MakeConstGen(constant float64) func() float64 {
	return func() float64 {
		return constant
	}
}

func MakeIncreasingGen(start, step float64) func() float64 {
	current := start - step
	return func() float64 {
		current += step
		return current
	}
}

// MakeUniformGen draws from [lo, hi) with a seeded source, so the same seed
// always yields the same sequence.
func MakeUniformGen(seed int64, lo, hi float64) func() float64 {
	rng := rand.New(rand.NewSource(seed))
	return func() float64 {
		return lo + rng.Float64()*(hi-lo)
	}
}

func FillFeatureMap(fm *tensor.FeatureMap, gen func() float64) {
	data := fm.Data()
	for i := range data {
		data[i] = fixp.ActivationFromFloat(gen())
	}
}

func FillWeights(w *tensor.WeightTensor, gen func() float64) {
	data := w.Data()
	for i := range data {
		data[i] = fixp.WeightFromFloat(gen())
	}
}

func FillBias(b *tensor.BiasVector, gen func() float64) {
	data := b.Data()
	for i := range data {
		data[i] = fixp.WeightFromFloat(gen())
	}
}

// RandomLayer builds the operands of l with uniformly distributed inputs in
// [-1, 1), weights in [-0.5, 0.5) and biases in [-0.25, 0.25).
func RandomLayer(l config.Layer, seed int64) (
	*tensor.FeatureMap, *tensor.WeightTensor, *tensor.BiasVector,
) {
	in := tensor.NewFeatureMap(l.InChannels, l.Height, l.Width)
	w := tensor.NewWeightTensor(l.OutChannels, l.InChannels)
	b := tensor.NewBiasVector(l.OutChannels)

	FillFeatureMap(in, MakeUniformGen(seed, -1, 1))
	FillWeights(w, MakeUniformGen(seed+1, -0.5, 0.5))
	FillBias(b, MakeUniformGen(seed+2, -0.25, 0.25))

	return in, w, b
}
