package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/core"
)

var _ = Describe("Schedule", func() {
	grid := config.Grid{Rows: 2, Cols: 2, OutBlocks: 2, InBlocks: 3}

	step := func(k core.StepKind, r, c, ob, ib int) core.Step {
		return core.Step{
			Kind:  k,
			Coord: core.TileCoord{Row: r, Col: c, OutBlock: ob, InBlock: ib},
		}
	}

	It("should produce every step of the layer", func() {
		steps := core.Schedule(grid)

		Expect(steps).To(HaveLen(2 * 2 * 2 * (3*3 + 1)))
	})

	It("should load and compute input blocks before storing", func() {
		steps := core.Schedule(grid)

		Expect(steps[:11]).To(Equal([]core.Step{
			step(core.StepLoadInput, 0, 0, 0, 0),
			step(core.StepLoadParams, 0, 0, 0, 0),
			step(core.StepCompute, 0, 0, 0, 0),
			step(core.StepLoadInput, 0, 0, 0, 1),
			step(core.StepLoadParams, 0, 0, 0, 1),
			step(core.StepCompute, 0, 0, 0, 1),
			step(core.StepLoadInput, 0, 0, 0, 2),
			step(core.StepLoadParams, 0, 0, 0, 2),
			step(core.StepCompute, 0, 0, 0, 2),
			step(core.StepStore, 0, 0, 0, 2),
			step(core.StepLoadInput, 0, 0, 1, 0),
		}))
	})

	It("should store each output block once in tile order", func() {
		var stores []core.TileCoord
		for _, s := range core.Schedule(grid) {
			if s.Kind == core.StepStore {
				stores = append(stores, s.Coord)
			}
		}

		var want []core.TileCoord
		for r := 0; r < 2; r++ {
			for c := 0; c < 2; c++ {
				for ob := 0; ob < 2; ob++ {
					want = append(want, core.TileCoord{
						Row: r, Col: c, OutBlock: ob, InBlock: 2,
					})
				}
			}
		}
		Expect(stores).To(Equal(want))
	})

	It("should compute input blocks in increasing order", func() {
		last := -1
		for _, s := range core.Schedule(grid) {
			switch s.Kind {
			case core.StepCompute:
				Expect(s.Coord.InBlock).To(Equal(last + 1))
				last = s.Coord.InBlock
			case core.StepStore:
				Expect(last).To(Equal(grid.InBlocks - 1))
				last = -1
			}
		}
	})

	It("should be empty for an empty grid", func() {
		Expect(core.Schedule(config.Grid{})).To(BeEmpty())
	})
})

var _ = Describe("Cursor", func() {
	grid := config.Grid{Rows: 4, Cols: 4, OutBlocks: 2, InBlocks: 1}

	It("should walk a single tile", func() {
		cur := core.NewTileCursor(grid, 2, 3)

		n := 0
		for s, ok := cur.Next(); ok; s, ok = cur.Next() {
			Expect(s.Coord.Row).To(Equal(2))
			Expect(s.Coord.Col).To(Equal(3))
			n++
		}
		Expect(n).To(Equal(2 * 4))
	})

	It("should stay exhausted", func() {
		cur := core.NewTileCursor(grid, 0, 0)
		for _, ok := cur.Next(); ok; _, ok = cur.Next() {
		}

		_, ok := cur.Next()
		Expect(ok).To(BeFalse())
	})

	It("should panic on a tile outside the grid", func() {
		Expect(func() { core.NewTileCursor(grid, 4, 0) }).To(Panic())
		Expect(func() { core.NewTileCursor(grid, 0, -1) }).To(Panic())
	})
})
