package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sarchlab/tileconv/fixp"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "TILECONV_"

// FromEnv overrides the fields of base with the TILECONV_* environment
// variables that are set.
func FromEnv(base Config) (Config, error) {
	return FromLookup(base, os.LookupEnv)
}

// FromLookup is FromEnv with a custom variable source.
func FromLookup(
	base Config,
	lookup func(string) (string, bool),
) (Config, error) {
	c := base

	ints := []struct {
		name string
		dst  *int
	}{
		{"TILE_HEIGHT", &c.TileHeight},
		{"TILE_WIDTH", &c.TileWidth},
		{"OUT_BLOCK", &c.OutBlock},
		{"IN_BLOCK", &c.InBlock},
		{"BUDGET_IN_DEPTH", &c.Budget.InBufDepth},
		{"BUDGET_IN_HEIGHT", &c.Budget.InBufHeight},
		{"BUDGET_IN_WIDTH", &c.Budget.InBufWidth},
		{"BUDGET_OUT_DEPTH", &c.Budget.OutBufDepth},
		{"BUDGET_OUT_HEIGHT", &c.Budget.OutBufHeight},
		{"BUDGET_OUT_WIDTH", &c.Budget.OutBufWidth},
	}

	for _, v := range ints {
		s, ok := lookup(EnvPrefix + v.name)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return base, fmt.Errorf("parsing %s%s: %w", EnvPrefix, v.name, err)
		}
		*v.dst = n
	}

	if s, ok := lookup(EnvPrefix + "OVERFLOW"); ok {
		p, err := fixp.ParseOverflowPolicy(s)
		if err != nil {
			return base, fmt.Errorf("parsing %sOVERFLOW: %w", EnvPrefix, err)
		}
		c.Overflow = p
	}

	return c, nil
}
