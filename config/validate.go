package config

import "fmt"

// Error is a configuration error: a tiling parameter that does not evenly
// divide its dimension or that exceeds the buffer budget. It is never
// retryable.
type Error struct {
	Param  string
	Value  int
	Limit  int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%d %s %d",
		e.Param, e.Value, e.Reason, e.Limit)
}

// Validate checks that every block size evenly partitions its dimension of l
// and that the buffers they need fit the budget. It returns the first
// violation as an *Error.
func (c Config) Validate(l Layer) error {
	if err := validateLayer(l); err != nil {
		return err
	}

	divisibility := []struct {
		param string
		value int
		dim   int
	}{
		{"tile_height", c.TileHeight, l.Height},
		{"tile_width", c.TileWidth, l.Width},
		{"out_block", c.OutBlock, l.OutChannels},
		{"in_block", c.InBlock, l.InChannels},
	}
	for _, d := range divisibility {
		if d.value <= 0 || d.dim%d.value != 0 {
			return &Error{
				Param:  d.param,
				Value:  d.value,
				Limit:  d.dim,
				Reason: "does not evenly divide",
			}
		}
	}

	b := c.Budget
	capacity := []struct {
		param string
		value int
		limit int
	}{
		{"in_block", c.InBlock, b.InBufDepth},
		{"tile_height+2", c.TileHeight + 2, b.InBufHeight},
		{"tile_width+2", c.TileWidth + 2, b.InBufWidth},
		{"out_block", c.OutBlock, b.OutBufDepth},
		{"tile_height", c.TileHeight, b.OutBufHeight},
		{"tile_width", c.TileWidth, b.OutBufWidth},
	}
	for _, d := range capacity {
		if d.value > d.limit {
			return &Error{
				Param:  d.param,
				Value:  d.value,
				Limit:  d.limit,
				Reason: "exceeds buffer capacity",
			}
		}
	}

	return nil
}

func validateLayer(l Layer) error {
	dims := []struct {
		param string
		value int
	}{
		{"in_channels", l.InChannels},
		{"out_channels", l.OutChannels},
		{"height", l.Height},
		{"width", l.Width},
	}
	for _, d := range dims {
		if d.value <= 0 {
			return &Error{
				Param:  d.param,
				Value:  d.value,
				Limit:  1,
				Reason: "is below",
			}
		}
	}

	return nil
}
