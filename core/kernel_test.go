package core_test

import (
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/core"
	"github.com/sarchlab/tileconv/fixp"
)

func smallConfig(tile, outBlock, inBlock int) config.Config {
	return config.Default().
		WithTile(tile, tile).
		WithBlocks(outBlock, inBlock).
		WithBudget(config.LayerBudget(config.Conv1))
}

var one = fixp.WeightFromFloat(1)

var _ = Describe("LoadInputTile", func() {
	var (
		mockCtrl *gomock.Controller
		src      *MockFeatureMapReader
		bufs     *core.Buffers
	)

	code := func(c, h, w int) fixp.Activation {
		return fixp.Activation(c*10000 + h*100 + w)
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		src = NewMockFeatureMapReader(mockCtrl)
		src.EXPECT().Dims().Return(3, 12, 12).AnyTimes()
		bufs = core.NewBuffers(smallConfig(4, 1, 3))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	expectReads := func(n int) {
		src.EXPECT().
			At(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(c, h, w int) fixp.Activation {
				Expect(c).To(BeNumerically(">=", 0))
				Expect(c).To(BeNumerically("<", 3))
				Expect(h).To(BeNumerically(">=", 0))
				Expect(h).To(BeNumerically("<", 12))
				Expect(w).To(BeNumerically(">=", 0))
				Expect(w).To(BeNumerically("<", 12))
				return code(c, h, w)
			}).
			Times(n)
	}

	It("should never read the padding of a corner tile", func() {
		expectReads(3 * 5 * 5)

		n := core.LoadInputTile(bufs.Input, src, core.TileCoord{})

		Expect(n).To(Equal(75))
		for c := 0; c < 3; c++ {
			for r := 1; r < 6; r++ {
				for col := 1; col < 6; col++ {
					Expect(bufs.Input.At3(c, r, col)).To(Equal(code(c, r-1, col-1)))
				}
			}
		}
	})

	It("should load the full halo of an interior tile", func() {
		expectReads(3 * 6 * 6)

		n := core.LoadInputTile(bufs.Input, src, core.TileCoord{Row: 1, Col: 1})

		Expect(n).To(Equal(108))
		Expect(bufs.Input.At3(0, 0, 0)).To(Equal(code(0, 3, 3)))
		Expect(bufs.Input.At3(2, 5, 5)).To(Equal(code(2, 8, 8)))
	})

	It("should select the input channel block", func() {
		bufs = core.NewBuffers(smallConfig(4, 1, 1))
		src.EXPECT().
			At(2, gomock.Any(), gomock.Any()).
			DoAndReturn(code).
			Times(6 * 6)

		core.LoadInputTile(bufs.Input, src, core.TileCoord{Row: 1, Col: 1, InBlock: 2})

		Expect(bufs.Input.At3(0, 1, 1)).To(Equal(code(2, 4, 4)))
	})
})

var _ = Describe("LoadWeightsAndBias", func() {
	It("should copy the block of the requested channels", func() {
		l := config.Conv1
		w, b := identityParams(l)
		w.Set(5, 2, 0, 1, 77)
		b.Set(5, 9)

		bufs := core.NewBuffers(smallConfig(4, 2, 1))
		n := core.LoadWeightsAndBias(bufs.Weight, bufs.Bias, w, b,
			core.TileCoord{OutBlock: 2, InBlock: 2})

		Expect(n).To(Equal(2*9 + 2))
		Expect(bufs.Weight.At4(1, 0, 0, 1)).To(Equal(fixp.Weight(77)))
		Expect(bufs.Weight.At4(0, 0, 1, 1)).To(Equal(one))
		Expect(bufs.Bias.At(1)).To(Equal(fixp.Weight(9)))
	})
})

var _ = Describe("Convolve3x3", func() {
	var bufs *core.Buffers

	BeforeEach(func() {
		bufs = core.NewBuffers(smallConfig(1, 1, 3))
		bufs.Input.Fill(fixp.ActivationFromFloat(0.0625))
		bufs.Weight.Fill(one)
		bufs.Bias.Fill(0)
	})

	window := func(row, col int) core.Window {
		return core.Window{Row: row, Col: col, Height: 32, Width: 32}
	}

	DescribeTable("should only count taps inside the global feature map",
		func(row, col, taps int) {
			macs := core.Convolve3x3(bufs.Output, bufs.Input, bufs.Weight,
				bufs.Bias, window(row, col), 0, 3, 1)

			Expect(macs).To(Equal(3 * taps))
			Expect(bufs.Output.At3(0, 0, 0).Float64()).
				To(Equal(float64(3*taps) * 0.0625))
		},
		Entry("top-left corner", 0, 0, 4),
		Entry("bottom-right corner", 31, 31, 4),
		Entry("top edge", 0, 7, 6),
		Entry("left edge", 13, 0, 6),
		Entry("interior", 5, 5, 9),
	)

	It("should ignore stale contents on the first input block", func() {
		bufs.Output.Fill(fixp.Accumulator(123456789))
		bufs.Bias.Fill(fixp.WeightFromFloat(0.5))

		core.Convolve3x3(bufs.Output, bufs.Input, bufs.Weight, bufs.Bias,
			window(5, 5), 0, 3, 1)

		Expect(bufs.Output.At3(0, 0, 0).Float64()).To(Equal(0.5 + 27*0.0625))
	})

	It("should accumulate later input blocks without adding the bias again", func() {
		bufs.Bias.Fill(fixp.WeightFromFloat(0.5))

		core.Convolve3x3(bufs.Output, bufs.Input, bufs.Weight, bufs.Bias,
			window(5, 5), 0, 3, 1)
		core.Convolve3x3(bufs.Output, bufs.Input, bufs.Weight, bufs.Bias,
			window(5, 5), 1, 3, 1)

		Expect(bufs.Output.At3(0, 0, 0).Float64()).To(Equal(0.5 + 2*27*0.0625))
	})

	It("should only visit the requested channels", func() {
		macs := core.Convolve3x3(bufs.Output, bufs.Input, bufs.Weight,
			bufs.Bias, window(5, 5), 0, 1, 1)

		Expect(macs).To(Equal(9))
	})
})

var _ = Describe("StoreOutputTile", func() {
	var (
		mockCtrl *gomock.Controller
		dst      *MockFeatureMapWriter
		bufs     *core.Buffers
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		dst = NewMockFeatureMapWriter(mockCtrl)
		bufs = core.NewBuffers(smallConfig(4, 2, 3))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should write exactly the region of the tile and block", func() {
		data := bufs.Output.Data()
		for i := range data {
			data[i] = fixp.Accumulator(i) << fixp.ActivationFracBits
		}

		dst.EXPECT().
			Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(c, h, w int, v fixp.Activation) {
				Expect(c).To(BeElementOf(2, 3))
				Expect(h).To(BeNumerically(">=", 4))
				Expect(h).To(BeNumerically("<", 8))
				Expect(w).To(BeNumerically(">=", 8))
				Expect(w).To(BeNumerically("<", 12))
				local := (c-2)*16 + (h-4)*4 + (w - 8)
				Expect(v).To(Equal(fixp.Activation(local)))
			}).
			Times(2 * 4 * 4)

		n, err := core.StoreOutputTile(dst, bufs.Output,
			core.TileCoord{Row: 1, Col: 2, OutBlock: 1}, fixp.OverflowSaturate)

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(0))
	})

	It("should count saturated elements", func() {
		bufs.Output.Fill(fixp.Accumulator(1) << 40)
		dst.EXPECT().
			Set(gomock.Any(), gomock.Any(), gomock.Any(), fixp.Activation(32767)).
			Times(32)

		n, err := core.StoreOutputTile(dst, bufs.Output,
			core.TileCoord{}, fixp.OverflowSaturate)

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(32))
	})

	It("should stop at the first overflow under the fail policy", func() {
		bufs.Output.Set(fixp.Accumulator(-1)<<40, 0, 0, 1)
		dst.EXPECT().
			Set(0, 0, 0, fixp.Activation(0)).
			Times(1)

		_, err := core.StoreOutputTile(dst, bufs.Output,
			core.TileCoord{}, fixp.OverflowFail)

		var overflow *fixp.OverflowError
		Expect(err).To(BeAssignableToTypeOf(overflow))
		Expect(err.(*fixp.OverflowError).Col).To(Equal(1))
	})
})
