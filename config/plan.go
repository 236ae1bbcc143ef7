package config

// AutoPlan picks, for each dimension of l, the largest block size that evenly
// divides the dimension and fits the budget. Larger tiles mean fewer halo
// reloads and fewer weight reloads, so the biggest feasible tile wins.
func AutoPlan(l Layer, b Budget) (Config, error) {
	if err := validateLayer(l); err != nil {
		return Config{}, err
	}

	c := Default().WithBudget(b)
	c.TileHeight = largestDivisor(l.Height, min(b.OutBufHeight, b.InBufHeight-2))
	c.TileWidth = largestDivisor(l.Width, min(b.OutBufWidth, b.InBufWidth-2))
	c.OutBlock = largestDivisor(l.OutChannels, b.OutBufDepth)
	c.InBlock = largestDivisor(l.InChannels, b.InBufDepth)

	if err := c.Validate(l); err != nil {
		return Config{}, err
	}

	return c, nil
}

// largestDivisor returns the largest d <= limit dividing n, or 0 if none.
func largestDivisor(n, limit int) int {
	for d := min(n, limit); d > 0; d-- {
		if n%d == 0 {
			return d
		}
	}

	return 0
}
