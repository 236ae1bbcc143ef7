package fixp

import (
	"fmt"
	"strings"
)

// OverflowPolicy decides what happens when a finished sum does not fit in an
// Activation.
type OverflowPolicy int

const (
	// OverflowSaturate clamps to the nearest representable value.
	OverflowSaturate OverflowPolicy = iota

	// OverflowFail reports an OverflowError.
	OverflowFail
)

// Name returns the configuration name of the policy.
func (p OverflowPolicy) Name() string {
	switch p {
	case OverflowSaturate:
		return "saturate"
	case OverflowFail:
		return "fail"
	default:
		panic("invalid overflow policy")
	}
}

func (p OverflowPolicy) String() string {
	return p.Name()
}

// ParseOverflowPolicy parses "saturate" or "fail".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "saturate", "sat":
		return OverflowSaturate, nil
	case "fail", "error":
		return OverflowFail, nil
	default:
		return OverflowSaturate, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// OverflowError is returned under OverflowFail when an output element does not
// fit in an Activation.
type OverflowError struct {
	Channel, Row, Col int
	Value             Accumulator
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf(
		"numeric overflow at [%d][%d][%d]: %.6f does not fit in an activation",
		e.Channel, e.Row, e.Col, e.Value.Float64())
}

// Resolve narrows acc under policy p. The bool result reports a saturation.
// Under OverflowFail an out-of-range value yields an *OverflowError located at
// (channel, row, col).
func (p OverflowPolicy) Resolve(
	acc Accumulator,
	channel, row, col int,
) (Activation, bool, error) {
	v, saturated := acc.Narrow()
	if saturated && p == OverflowFail {
		return 0, false, &OverflowError{
			Channel: channel,
			Row:     row,
			Col:     col,
			Value:   acc,
		}
	}

	return v, saturated, nil
}
