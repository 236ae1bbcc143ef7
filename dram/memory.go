package dram

import (
	"encoding/binary"
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

// Traffic counts the bytes moved through the views of a Memory.
type Traffic struct {
	BytesRead    uint64
	BytesWritten uint64
}

// Memory is a DRAM image holding the operands of one layer.
type Memory struct {
	layout  Layout
	storage *mem.Storage
	traffic Traffic
}

// NewMemory allocates a zeroed storage large enough for layout.
func NewMemory(layout Layout) *Memory {
	return &Memory{
		layout:  layout,
		storage: mem.NewStorage(layout.Size()),
	}
}

// Layout returns the placement of the operands.
func (m *Memory) Layout() Layout {
	return m.layout
}

// Storage returns the underlying storage.
func (m *Memory) Storage() *mem.Storage {
	return m.storage
}

// Traffic returns the bytes moved through the views so far. Upload and
// Download are not counted.
func (m *Memory) Traffic() Traffic {
	return m.traffic
}

// ResetTraffic clears the traffic counters.
func (m *Memory) ResetTraffic() {
	m.traffic = Traffic{}
}

// Input returns a view of the input feature map.
func (m *Memory) Input() *FeatureMapView {
	l := m.layout.Layer
	return &FeatureMapView{
		mem:    m,
		name:   "dram.input",
		region: m.layout.Input,
		shape:  [3]int{l.InChannels, l.Height, l.Width},
	}
}

// Output returns a view of the output feature map.
func (m *Memory) Output() *FeatureMapView {
	l := m.layout.Layer
	return &FeatureMapView{
		mem:    m,
		name:   "dram.output",
		region: m.layout.Output,
		shape:  [3]int{l.OutChannels, l.Height, l.Width},
	}
}

// Weights returns a view of the weight tensor.
func (m *Memory) Weights() *WeightView {
	l := m.layout.Layer
	k := tensor.KernelSize
	return &WeightView{
		mem:    m,
		region: m.layout.Weights,
		shape:  [4]int{l.OutChannels, l.InChannels, k, k},
	}
}

// Bias returns a view of the bias vector.
func (m *Memory) Bias() *BiasView {
	return &BiasView{
		mem:    m,
		region: m.layout.Bias,
		n:      m.layout.Layer.OutChannels,
	}
}

// Upload writes the input, weights and bias into their regions.
func (m *Memory) Upload(
	input tensor.FeatureMapReader,
	weights tensor.WeightReader,
	bias tensor.BiasReader,
) error {
	l := m.layout.Layer

	c, h, w := input.Dims()
	if c != l.InChannels || h != l.Height || w != l.Width {
		return fmt.Errorf("upload: input is %dx%dx%d, layout expects %s",
			c, h, w, l)
	}

	oc, ic, kh, kw := weights.Dims()
	if oc != l.OutChannels || ic != l.InChannels ||
		kh != tensor.KernelSize || kw != tensor.KernelSize {
		return fmt.Errorf("upload: weights are %dx%dx%dx%d, layout expects %s",
			oc, ic, kh, kw, l)
	}

	if bias.Len() != l.OutChannels {
		return fmt.Errorf("upload: bias has %d entries, layout expects %d",
			bias.Len(), l.OutChannels)
	}

	buf := make([]byte, 0, m.layout.Input.Size)
	for i := 0; i < c; i++ {
		for j := 0; j < h; j++ {
			for k := 0; k < w; k++ {
				buf = binary.LittleEndian.AppendUint16(buf, uint16(input.At(i, j, k)))
			}
		}
	}
	if err := m.storage.Write(m.layout.Input.Base, buf); err != nil {
		return fmt.Errorf("upload input: %w", err)
	}

	buf = make([]byte, 0, m.layout.Weights.Size)
	for i := 0; i < oc; i++ {
		for j := 0; j < ic; j++ {
			for y := 0; y < kh; y++ {
				for x := 0; x < kw; x++ {
					buf = binary.LittleEndian.AppendUint16(buf, uint16(weights.At(i, j, y, x)))
				}
			}
		}
	}
	if err := m.storage.Write(m.layout.Weights.Base, buf); err != nil {
		return fmt.Errorf("upload weights: %w", err)
	}

	buf = make([]byte, 0, m.layout.Bias.Size)
	for i := 0; i < oc; i++ {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(bias.At(i)))
	}
	if err := m.storage.Write(m.layout.Bias.Base, buf); err != nil {
		return fmt.Errorf("upload bias: %w", err)
	}

	return nil
}

// Download reads the output region into a new feature map.
func (m *Memory) Download() (*tensor.FeatureMap, error) {
	l := m.layout.Layer
	out := tensor.NewFeatureMap(l.OutChannels, l.Height, l.Width)

	raw, err := m.storage.Read(m.layout.Output.Base, m.layout.Output.Size)
	if err != nil {
		return nil, fmt.Errorf("download output: %w", err)
	}

	data := out.Data()
	for i := range data {
		data[i] = fixp.Activation(binary.LittleEndian.Uint16(raw[2*i:]))
	}

	return out, nil
}

func (m *Memory) readWord(addr uint64) uint16 {
	raw, err := m.storage.Read(addr, 2)
	if err != nil {
		panic(err)
	}

	m.traffic.BytesRead += 2

	return binary.LittleEndian.Uint16(raw)
}

func (m *Memory) writeWord(addr uint64, v uint16) {
	var raw [2]byte
	binary.LittleEndian.PutUint16(raw[:], v)

	if err := m.storage.Write(addr, raw[:]); err != nil {
		panic(err)
	}

	m.traffic.BytesWritten += 2
}
