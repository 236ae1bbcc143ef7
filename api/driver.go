// Package api defines the driver API for the convolution accelerator.
package api

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/core"
	"github.com/sarchlab/tileconv/dram"
	"github.com/sarchlab/tileconv/tensor"
)

// Driver provides the interface to control an accelerator.
type Driver interface {
	sim.Component

	// Memory returns the DRAM image the accelerator reads and writes.
	Memory() *dram.Memory

	// Load uploads the input feature map, the weights and the bias to the
	// DRAM image.
	Load(
		input tensor.FeatureMapReader,
		weights tensor.WeightReader,
		bias tensor.BiasReader,
	) error

	// Run executes the whole layer and returns when the simulation is over.
	Run() error

	// Result downloads the output feature map from the DRAM image.
	Result() (*tensor.FeatureMap, error)

	// Stats returns the statistics of the last run.
	Stats() Stats
}

// Stats summarizes a simulated run.
type Stats struct {
	Cycles       int
	Steps        int
	BytesRead    uint64
	BytesWritten uint64
	Engine       core.Stats
}

// Table renders the statistics as a two-column table.
func (s Stats) Table(title string) string {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Cycles", s.Cycles},
		{"Steps", s.Steps},
		{"Tiles", s.Engine.Tiles},
		{"Bytes read", s.BytesRead},
		{"Bytes written", s.BytesWritten},
		{"MACs", s.Engine.MACs},
		{"Saturated", s.Engine.Saturated},
	})

	return t.Render()
}

type driverImpl struct {
	*sim.TickingComponent

	engine sim.Engine
	cfg    config.Config
	timing Timing
	memory *dram.Memory

	exec   *core.Executor
	cursor *core.Cursor
	busy   int
	stats  Stats
	err    error
}

func (d *driverImpl) Memory() *dram.Memory {
	return d.memory
}

func (d *driverImpl) Load(
	input tensor.FeatureMapReader,
	weights tensor.WeightReader,
	bias tensor.BiasReader,
) error {
	return d.memory.Upload(input, weights, bias)
}

func (d *driverImpl) Result() (*tensor.FeatureMap, error) {
	return d.memory.Download()
}

func (d *driverImpl) Stats() Stats {
	return d.stats
}

// Run validates the configuration against the DRAM image, schedules the first
// tick and runs the engine until the accelerator goes idle.
func (d *driverImpl) Run() error {
	if err := d.start(); err != nil {
		return err
	}

	d.TickNow()

	if err := d.engine.Run(); err != nil {
		return err
	}

	if d.err != nil {
		return d.err
	}

	if d.cursor != nil {
		return fmt.Errorf("%s: simulation ended before the layer finished", d.Name())
	}

	return nil
}

func (d *driverImpl) start() error {
	exec, err := core.NewExecutor(core.Operands{
		Input:   d.memory.Input(),
		Output:  d.memory.Output(),
		Weights: d.memory.Weights(),
		Bias:    d.memory.Bias(),
	}, d.cfg)
	if err != nil {
		return err
	}

	d.memory.ResetTraffic()
	d.exec = exec
	d.cursor = core.NewCursor(exec.Grid())
	d.busy = 0
	d.stats = Stats{}
	d.err = nil

	return nil
}

// Tick runs the driver for one cycle. A step is issued when the previous one
// has finished and then occupies the accelerator for the cycles the timing
// model assigns to it.
func (d *driverImpl) Tick() (madeProgress bool) {
	if d.cursor == nil {
		return false
	}

	if d.busy > 0 {
		d.busy--
		d.stats.Cycles++
		return true
	}

	s, ok := d.cursor.Next()
	if !ok {
		d.finish()
		return false
	}

	cost, err := d.exec.Execute(s)
	if err != nil {
		d.err = err
		d.finish()
		return false
	}

	cycles := d.timing.Cycles(cost)
	d.busy = cycles - 1
	d.stats.Cycles++
	d.stats.Steps++

	core.Trace("Step",
		"Time", float64(d.engine.CurrentTime()*1e9),
		"Driver", d.Name(),
		"Kind", s.Kind.Name(),
		"Coord", s.Coord.String(),
		"Cycles", cycles,
	)

	return true
}

func (d *driverImpl) finish() {
	traffic := d.memory.Traffic()
	d.stats.BytesRead = traffic.BytesRead
	d.stats.BytesWritten = traffic.BytesWritten
	d.stats.Engine = d.exec.Stats()
	d.cursor = nil
}
