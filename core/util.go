package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	PrintToggle            = false
	LevelTrace  slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// Table renders the statistics as a two-column table.
func (s Stats) Table(title string) string {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Tiles", s.Tiles},
		{"Input loads", s.InputLoads},
		{"Param loads", s.ParamLoads},
		{"Computes", s.Computes},
		{"Stores", s.Stores},
		{"Elements in", s.ElementsIn},
		{"Elements out", s.ElementsOut},
		{"MACs", s.MACs},
		{"Saturated", s.Saturated},
	})

	return t.Render()
}

// PrintBuffers dumps the partial sums of one output channel of the output
// tile buffer. It is a no-op unless PrintToggle is set.
func PrintBuffers(b *Buffers, channel int) {
	if !PrintToggle {
		return
	}

	th, tw := b.Output.Dim(1), b.Output.Dim(2)

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("OutputTileBuffer[%d]", channel))

	header := table.Row{"Row"}
	for c := 0; c < tw; c++ {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for r := 0; r < th; r++ {
		row := table.Row{r}
		for c := 0; c < tw; c++ {
			row = append(row, fmt.Sprintf("%.4f", b.Output.At3(channel, r, c).Float64()))
		}
		t.AppendRow(row)
	}

	fmt.Println(t.Render())
}
