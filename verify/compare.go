package verify

import (
	"fmt"

	"github.com/sarchlab/tileconv/fixp"
	"github.com/sarchlab/tileconv/tensor"
)

// Mismatch is one output element that differs from the reference.
type Mismatch struct {
	Channel, Row, Col int
	Got, Want         fixp.Activation
}

func (m Mismatch) String() string {
	return fmt.Sprintf("[%d][%d][%d]: got %v, want %v",
		m.Channel, m.Row, m.Col, m.Got, m.Want)
}

// Compare returns the elements where got differs from want, up to limit
// mismatches (all of them when limit <= 0), and the total count.
func Compare(got, want tensor.FeatureMapReader, limit int) ([]Mismatch, int) {
	gc, gh, gw := got.Dims()
	wc, wh, ww := want.Dims()
	if gc != wc || gh != wh || gw != ww {
		panic(fmt.Sprintf("compare: shape %dx%dx%d vs %dx%dx%d",
			gc, gh, gw, wc, wh, ww))
	}

	var mismatches []Mismatch
	total := 0
	for c := 0; c < wc; c++ {
		for r := 0; r < wh; r++ {
			for col := 0; col < ww; col++ {
				g, w := got.At(c, r, col), want.At(c, r, col)
				if g == w {
					continue
				}

				total++
				if limit <= 0 || len(mismatches) < limit {
					mismatches = append(mismatches, Mismatch{
						Channel: c, Row: r, Col: col, Got: g, Want: w,
					})
				}
			}
		}
	}

	return mismatches, total
}
