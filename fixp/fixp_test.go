package fixp_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tileconv/fixp"
)

var _ = Describe("Fixed point", func() {
	Context("conversion", func() {
		It("should represent one as 2^13", func() {
			Expect(fixp.ActivationFromFloat(1.0)).To(Equal(fixp.Activation(8192)))
			Expect(fixp.WeightFromFloat(-0.5)).To(Equal(fixp.Weight(-4096)))
		})

		It("should round to the nearest code", func() {
			lsb := math.Ldexp(1, -fixp.ActivationFracBits)
			Expect(fixp.ActivationFromFloat(0.6 * lsb)).To(Equal(fixp.Activation(1)))
			Expect(fixp.ActivationFromFloat(0.4 * lsb)).To(Equal(fixp.Activation(0)))
		})

		It("should saturate out-of-range values", func() {
			Expect(fixp.ActivationFromFloat(10)).To(Equal(fixp.Activation(math.MaxInt16)))
			Expect(fixp.ActivationFromFloat(-10)).To(Equal(fixp.Activation(math.MinInt16)))
			Expect(fixp.WeightFromFloat(math.NaN())).To(Equal(fixp.Weight(0)))
		})

		It("should convert back to float", func() {
			Expect(fixp.Activation(8192 + 4096).Float64()).To(Equal(1.5))
			Expect(fixp.Weight(-8192).Float64()).To(Equal(-1.0))
		})
	})

	Context("multiply-accumulate", func() {
		It("should multiply exactly", func() {
			a := fixp.ActivationFromFloat(1.5)
			w := fixp.WeightFromFloat(-2.25)
			Expect(fixp.Mul(a, w).Float64()).To(Equal(-3.375))
		})

		It("should align the bias to the accumulator point", func() {
			Expect(fixp.BiasAccumulator(fixp.WeightFromFloat(0.25)).Float64()).
				To(Equal(0.25))
		})

		It("should not overflow a full 27-term chain of extreme products", func() {
			var acc fixp.Accumulator
			acc = fixp.BiasAccumulator(math.MinInt16)
			for i := 0; i < 27; i++ {
				acc += fixp.Mul(math.MinInt16, math.MinInt16)
			}

			Expect(acc.Float64()).To(Equal(-4.0 + 27*16.0))
		})
	})

	Context("narrowing", func() {
		It("should truncate toward negative infinity", func() {
			half := fixp.Accumulator(1) << (fixp.ActivationFracBits - 1)
			v, sat := (fixp.Mul(3, 8192) + half).Narrow()
			Expect(v).To(Equal(fixp.Activation(3)))
			Expect(sat).To(BeFalse())

			v, _ = (-fixp.Accumulator(1)).Narrow()
			Expect(v).To(Equal(fixp.Activation(-1)))
		})

		It("should saturate large sums", func() {
			v, sat := fixp.Accumulator(1 << 40).Narrow()
			Expect(v).To(Equal(fixp.Activation(math.MaxInt16)))
			Expect(sat).To(BeTrue())

			v, sat = fixp.Accumulator(-(1 << 40)).Narrow()
			Expect(v).To(Equal(fixp.Activation(math.MinInt16)))
			Expect(sat).To(BeTrue())
		})
	})

	Context("overflow policy", func() {
		It("should parse policy names", func() {
			p, err := fixp.ParseOverflowPolicy("FAIL")
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(fixp.OverflowFail))

			p, err = fixp.ParseOverflowPolicy("")
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(fixp.OverflowSaturate))

			_, err = fixp.ParseOverflowPolicy("wrap")
			Expect(err).To(HaveOccurred())
		})

		It("should report the location under the fail policy", func() {
			_, _, err := fixp.OverflowFail.Resolve(1<<40, 4, 5, 6)

			var overflow *fixp.OverflowError
			Expect(errors.As(err, &overflow)).To(BeTrue())
			Expect(overflow.Channel).To(Equal(4))
			Expect(overflow.Row).To(Equal(5))
			Expect(overflow.Col).To(Equal(6))
		})

		It("should count saturation under the saturate policy", func() {
			v, sat, err := fixp.OverflowSaturate.Resolve(1<<40, 0, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(sat).To(BeTrue())
			Expect(v).To(Equal(fixp.Activation(math.MaxInt16)))
		})
	})
})
