package core

import (
	"fmt"

	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/tensor"
)

// Operands are the bulk-memory tensors of one layer invocation.
type Operands struct {
	Input   tensor.FeatureMapReader
	Output  tensor.FeatureMapWriter
	Weights tensor.WeightReader
	Bias    tensor.BiasReader
}

// Layer derives the layer shape from the operands and checks that they agree
// with each other.
func (o Operands) Layer() (config.Layer, error) {
	inC, h, w := o.Input.Dims()
	outC, wIn, kh, kw := o.Weights.Dims()
	l := config.Layer{InChannels: inC, OutChannels: outC, Height: h, Width: w}

	oc, oh, ow := o.Output.Dims()
	checks := []struct {
		param string
		value int
		want  int
	}{
		{"weights.in_channels", wIn, inC},
		{"weights.kernel_height", kh, tensor.KernelSize},
		{"weights.kernel_width", kw, tensor.KernelSize},
		{"bias.len", o.Bias.Len(), outC},
		{"output.channels", oc, outC},
		{"output.height", oh, h},
		{"output.width", ow, w},
	}
	for _, c := range checks {
		if c.value != c.want {
			return l, &config.Error{
				Param:  c.param,
				Value:  c.value,
				Limit:  c.want,
				Reason: "does not match",
			}
		}
	}

	return l, nil
}

// StepCost is the work a step performed.
type StepCost struct {
	ElementsIn  int
	ElementsOut int
	MACs        int
}

// Stats summarizes a layer invocation.
type Stats struct {
	Tiles       int
	InputLoads  int
	ParamLoads  int
	Computes    int
	Stores      int
	ElementsIn  int
	ElementsOut int
	MACs        int
	Saturated   int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Tiles += o.Tiles
	s.InputLoads += o.InputLoads
	s.ParamLoads += o.ParamLoads
	s.Computes += o.Computes
	s.Stores += o.Stores
	s.ElementsIn += o.ElementsIn
	s.ElementsOut += o.ElementsOut
	s.MACs += o.MACs
	s.Saturated += o.Saturated
}

// Executor performs individual steps against one set of on-chip buffers.
type Executor struct {
	layer config.Layer
	cfg   config.Config
	ops   Operands
	bufs  *Buffers
	stats Stats
}

// NewExecutor validates cfg against the operands and allocates the buffers.
// A configuration error is returned before any buffer exists.
func NewExecutor(ops Operands, cfg config.Config) (*Executor, error) {
	l, err := ops.Layer()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(l); err != nil {
		return nil, err
	}

	return &Executor{
		layer: l,
		cfg:   cfg,
		ops:   ops,
		bufs:  NewBuffers(cfg),
	}, nil
}

// Layer returns the layer shape.
func (e *Executor) Layer() config.Layer {
	return e.layer
}

// Config returns the validated configuration.
func (e *Executor) Config() config.Config {
	return e.cfg
}

// Grid returns the partition of the layer.
func (e *Executor) Grid() config.Grid {
	return e.cfg.Grid(e.layer)
}

// Buffers returns the on-chip buffers.
func (e *Executor) Buffers() *Buffers {
	return e.bufs
}

// Stats returns the totals so far.
func (e *Executor) Stats() Stats {
	return e.stats
}

// Execute runs one step.
func (e *Executor) Execute(s Step) (StepCost, error) {
	var cost StepCost

	switch s.Kind {
	case StepLoadInput:
		if s.Coord.OutBlock == 0 && s.Coord.InBlock == 0 {
			e.stats.Tiles++
			Trace("Tile",
				"Row", s.Coord.Row,
				"Col", s.Coord.Col,
			)
		}
		cost.ElementsIn = LoadInputTile(e.bufs.Input, e.ops.Input, s.Coord)
		e.stats.InputLoads++
	case StepLoadParams:
		cost.ElementsIn = LoadWeightsAndBias(
			e.bufs.Weight, e.bufs.Bias, e.ops.Weights, e.ops.Bias, s.Coord)
		e.stats.ParamLoads++
	case StepCompute:
		cost.MACs = Convolve3x3(
			e.bufs.Output, e.bufs.Input, e.bufs.Weight, e.bufs.Bias,
			e.window(s.Coord), s.Coord.InBlock,
			e.cfg.InBlock, e.cfg.OutBlock)
		e.stats.Computes++
		PrintBuffers(e.bufs, 0)
	case StepStore:
		saturated, err := StoreOutputTile(
			e.ops.Output, e.bufs.Output, s.Coord, e.cfg.Overflow)
		e.stats.Saturated += saturated
		if err != nil {
			return cost, fmt.Errorf("storing %s: %w", s.Coord, err)
		}
		cost.ElementsOut = e.bufs.Output.Len()
		e.stats.Stores++
		Trace("Store",
			"Row", s.Coord.Row,
			"Col", s.Coord.Col,
			"OutBlock", s.Coord.OutBlock,
			"Saturated", saturated,
		)
	default:
		panic("invalid step kind")
	}

	e.stats.ElementsIn += cost.ElementsIn
	e.stats.ElementsOut += cost.ElementsOut
	e.stats.MACs += cost.MACs

	return cost, nil
}

func (e *Executor) window(c TileCoord) Window {
	return Window{
		Row:    c.Row * e.cfg.TileHeight,
		Col:    c.Col * e.cfg.TileWidth,
		Height: e.layer.Height,
		Width:  e.layer.Width,
	}
}
