package core

import (
	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/tensor"
)

// Orchestrator runs a whole layer synchronously, one step at a time.
type Orchestrator struct {
	exec *Executor
}

// NewOrchestrator validates the configuration and allocates the buffers.
func NewOrchestrator(ops Operands, cfg config.Config) (*Orchestrator, error) {
	exec, err := NewExecutor(ops, cfg)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{exec: exec}, nil
}

// Run executes every step of the layer in schedule order. It stops at the
// first error.
func (o *Orchestrator) Run() (Stats, error) {
	grid := o.exec.Grid()
	Trace("Layer",
		"Behavior", "Start",
		"Layer", o.exec.Layer().String(),
		"Config", o.exec.Config().String(),
		"Tiles", grid.Tiles(),
	)

	cur := NewCursor(grid)
	for s, ok := cur.Next(); ok; s, ok = cur.Next() {
		if _, err := o.exec.Execute(s); err != nil {
			return o.exec.Stats(), err
		}
	}

	stats := o.exec.Stats()
	Trace("Layer",
		"Behavior", "Done",
		"MACs", stats.MACs,
		"Saturated", stats.Saturated,
	)

	return stats, nil
}

// RunConvLayer computes output = conv3x3(input, weights) + bias with the
// tiling in cfg. The layer shape comes from the operands. A configuration
// that does not partition the layer or does not fit the budget is rejected
// with a *config.Error before any buffer is populated.
func RunConvLayer(
	input tensor.FeatureMapReader,
	output tensor.FeatureMapWriter,
	weights tensor.WeightReader,
	bias tensor.BiasReader,
	cfg config.Config,
) (Stats, error) {
	o, err := NewOrchestrator(Operands{
		Input:   input,
		Output:  output,
		Weights: weights,
		Bias:    bias,
	}, cfg)
	if err != nil {
		return Stats{}, err
	}

	return o.Run()
}
