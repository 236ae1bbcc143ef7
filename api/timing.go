package api

import (
	"github.com/sarchlab/tileconv/core"
	"github.com/sarchlab/tileconv/fixp"
)

// Timing is the latency model of the accelerator. Every step costs a fixed
// overhead plus the cycles its memory transfers and its multiply-accumulates
// take. Transfers and compute of one step are not overlapped.
type Timing struct {
	// BytesPerCycle is the DRAM burst bandwidth.
	BytesPerCycle int

	// MACLanes is the number of multiply-accumulates retired per cycle.
	MACLanes int

	// StepOverhead is the fixed number of cycles of every step.
	StepOverhead int
}

// DefaultTiming is a 16 B/cycle memory interface feeding 32 MAC lanes.
var DefaultTiming = Timing{
	BytesPerCycle: 16,
	MACLanes:      32,
	StepOverhead:  1,
}

// Cycles returns the number of cycles a step with the given cost takes. It is
// never less than one.
func (t Timing) Cycles(cost core.StepCost) int {
	bytes := cost.ElementsIn*fixp.ActivationBytes +
		cost.ElementsOut*fixp.ActivationBytes

	cycles := t.StepOverhead +
		divCeil(bytes, t.BytesPerCycle) +
		divCeil(cost.MACs, t.MACLanes)

	return max(cycles, 1)
}

func divCeil(n, d int) int {
	if d <= 0 {
		panic("non-positive rate in timing model")
	}

	return (n + d - 1) / d
}
