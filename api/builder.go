package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/dram"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine    sim.Engine
	freq      sim.Freq
	layer     config.Layer
	cfg       config.Config
	timing    Timing
	alignment uint64
}

// MakeDriverBuilder returns a builder for the conv1 layer with the default
// configuration and timing.
func MakeDriverBuilder() DriverBuilder {
	return DriverBuilder{
		freq:   1 * sim.GHz,
		layer:  config.Conv1,
		cfg:    config.Default(),
		timing: DefaultTiming,
	}
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithLayer sets the shape of the layer the DRAM image holds.
func (b DriverBuilder) WithLayer(l config.Layer) DriverBuilder {
	b.layer = l
	return b
}

// WithConfig sets the tiling configuration.
func (b DriverBuilder) WithConfig(cfg config.Config) DriverBuilder {
	b.cfg = cfg
	return b
}

// WithTiming sets the latency model.
func (b DriverBuilder) WithTiming(t Timing) DriverBuilder {
	b.timing = t
	return b
}

// WithAlignment sets the alignment of the DRAM regions.
func (b DriverBuilder) WithAlignment(alignment uint64) DriverBuilder {
	b.alignment = alignment
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	d := &driverImpl{
		engine: b.engine,
		cfg:    b.cfg,
		timing: b.timing,
		memory: dram.NewMemory(dram.NewLayout(b.layer, b.alignment)),
	}

	d.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, d)

	return d
}
