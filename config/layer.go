package config

import "fmt"

// Layer is the shape of one 3x3, stride 1, padding 1 convolution.
type Layer struct {
	InChannels  int `yaml:"in_channels"`
	OutChannels int `yaml:"out_channels"`
	Height      int `yaml:"height"`
	Width       int `yaml:"width"`
}

// Conv1 is the first convolution of the accelerated network: a 3-channel
// 32x32 image to 32 feature maps.
var Conv1 = Layer{
	InChannels:  3,
	OutChannels: 32,
	Height:      32,
	Width:       32,
}

func (l Layer) String() string {
	return fmt.Sprintf("%dx%dx%d -> %dx%dx%d",
		l.InChannels, l.Height, l.Width, l.OutChannels, l.Height, l.Width)
}

// Grid is the number of tiles and channel blocks a configuration splits a
// layer into.
type Grid struct {
	Rows, Cols          int
	OutBlocks, InBlocks int
}

// Tiles returns the number of spatial tiles.
func (g Grid) Tiles() int {
	return g.Rows * g.Cols
}
