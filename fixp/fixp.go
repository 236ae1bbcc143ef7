// Package fixp defines the fixed-point number formats used by the
// convolution engine.
//
// Feature-map values and weights are both 16-bit two's complement numbers with
// 3 integer bits (sign included) and 13 fractional bits, the same layout as an
// HLS ap_fixed<16,3>. Products and partial sums are kept in a 64-bit
// accumulator with 26 fractional bits, so a whole 3x3xC multiply-accumulate
// chain is exact. Rounding and saturation happen only when an accumulator is
// narrowed back to an Activation.
package fixp

import (
	"fmt"
	"math"
)

const (
	// ActivationFracBits is the number of fractional bits of an Activation.
	ActivationFracBits = 13

	// WeightFracBits is the number of fractional bits of a Weight.
	WeightFracBits = 13

	// AccumulatorFracBits is the number of fractional bits of an Accumulator.
	AccumulatorFracBits = ActivationFracBits + WeightFracBits

	// ActivationBytes is the storage size of one Activation.
	ActivationBytes = 2

	// WeightBytes is the storage size of one Weight.
	WeightBytes = 2

	// AccumulatorBytes is the on-chip storage size of one partial sum.
	AccumulatorBytes = 8
)

// Activation is a feature-map value.
type Activation int16

// Weight is a kernel weight or a bias value.
type Weight int16

// Accumulator is a wide partial sum of Activation x Weight products.
type Accumulator int64

// ActivationFromFloat converts f to the nearest Activation, saturating at the
// ends of the range.
func ActivationFromFloat(f float64) Activation {
	return Activation(quantize(f, ActivationFracBits))
}

// WeightFromFloat converts f to the nearest Weight, saturating at the ends of
// the range.
func WeightFromFloat(f float64) Weight {
	return Weight(quantize(f, WeightFracBits))
}

func quantize(f float64, fracBits uint) int16 {
	if math.IsNaN(f) {
		return 0
	}

	r := math.Round(math.Ldexp(f, int(fracBits)))
	switch {
	case r > math.MaxInt16:
		return math.MaxInt16
	case r < math.MinInt16:
		return math.MinInt16
	}

	return int16(r)
}

// Float64 returns the real value represented by a.
func (a Activation) Float64() float64 {
	return math.Ldexp(float64(a), -ActivationFracBits)
}

// Float64 returns the real value represented by w.
func (w Weight) Float64() float64 {
	return math.Ldexp(float64(w), -WeightFracBits)
}

// Float64 returns the real value represented by acc.
func (acc Accumulator) Float64() float64 {
	return math.Ldexp(float64(acc), -AccumulatorFracBits)
}

func (a Activation) String() string {
	return fmt.Sprintf("%.6f", a.Float64())
}

func (w Weight) String() string {
	return fmt.Sprintf("%.6f", w.Float64())
}

// Mul returns the exact product of an activation and a weight.
func Mul(a Activation, w Weight) Accumulator {
	return Accumulator(int32(a) * int32(w))
}

// BiasAccumulator aligns a bias value to the accumulator binary point.
func BiasAccumulator(b Weight) Accumulator {
	return Accumulator(b) << ActivationFracBits
}

// Narrow converts acc to an Activation. The fractional bits below the
// Activation LSB are truncated toward negative infinity and out-of-range
// values saturate. The second result reports whether saturation happened.
func (acc Accumulator) Narrow() (Activation, bool) {
	v := int64(acc) >> ActivationFracBits
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16, true
	case v < math.MinInt16:
		return math.MinInt16, true
	}

	return Activation(v), false
}
