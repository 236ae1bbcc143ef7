package config

import (
	"fmt"
	"os"

	"github.com/sarchlab/tileconv/fixp"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with optional fields so that a file only needs to
// list what it changes.
type fileConfig struct {
	Layer      *Layer      `yaml:"layer"`
	TileHeight *int        `yaml:"tile_height"`
	TileWidth  *int        `yaml:"tile_width"`
	OutBlock   *int        `yaml:"out_block"`
	InBlock    *int        `yaml:"in_block"`
	Overflow   *string     `yaml:"overflow"`
	Budget     *fileBudget `yaml:"budget"`
}

type fileBudget struct {
	InBufDepth   *int `yaml:"in_buf_depth"`
	InBufHeight  *int `yaml:"in_buf_height"`
	InBufWidth   *int `yaml:"in_buf_width"`
	OutBufDepth  *int `yaml:"out_buf_depth"`
	OutBufHeight *int `yaml:"out_buf_height"`
	OutBufWidth  *int `yaml:"out_buf_width"`
}

func (f *fileBudget) apply(b *Budget) {
	fields := []struct {
		src *int
		dst *int
	}{
		{f.InBufDepth, &b.InBufDepth},
		{f.InBufHeight, &b.InBufHeight},
		{f.InBufWidth, &b.InBufWidth},
		{f.OutBufDepth, &b.OutBufDepth},
		{f.OutBufHeight, &b.OutBufHeight},
		{f.OutBufWidth, &b.OutBufWidth},
	}
	for _, x := range fields {
		if x.src != nil {
			*x.dst = *x.src
		}
	}
}

// LoadFile reads a YAML configuration file and applies it on top of base.
// The layer defaults to base layer l unless the file has a layer section.
func LoadFile(path string, l Layer, base Config) (Layer, Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return l, base, fmt.Errorf("reading config %s: %w", path, err)
	}

	return Parse(data, l, base)
}

// Parse applies a YAML document on top of base. Budget fields missing from
// the document keep their base values.
func Parse(data []byte, l Layer, base Config) (Layer, Config, error) {
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return l, base, fmt.Errorf("parsing config: %w", err)
	}

	c := base
	if f.Layer != nil {
		l = *f.Layer
	}
	if f.TileHeight != nil {
		c.TileHeight = *f.TileHeight
	}
	if f.TileWidth != nil {
		c.TileWidth = *f.TileWidth
	}
	if f.OutBlock != nil {
		c.OutBlock = *f.OutBlock
	}
	if f.InBlock != nil {
		c.InBlock = *f.InBlock
	}
	if f.Budget != nil {
		f.Budget.apply(&c.Budget)
	}
	if f.Overflow != nil {
		p, err := fixp.ParseOverflowPolicy(*f.Overflow)
		if err != nil {
			return l, base, fmt.Errorf("parsing config: %w", err)
		}
		c.Overflow = p
	}

	return l, c, nil
}
