package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/tileconv/tensor"
)

// maxReported caps the mismatches kept in a report.
const maxReported = 16

// VerificationReport is the outcome of comparing one engine run with the
// reference model.
type VerificationReport struct {
	Name       string
	Elements   int
	Mismatches []Mismatch
	Total      int
}

// GenerateReport compares got against want.
func GenerateReport(name string, got, want tensor.FeatureMapReader) *VerificationReport {
	c, h, w := want.Dims()
	mismatches, total := Compare(got, want, maxReported)

	return &VerificationReport{
		Name:       name,
		Elements:   c * h * w,
		Mismatches: mismatches,
		Total:      total,
	}
}

// OK reports whether the result is bit-exact.
func (r *VerificationReport) OK() bool {
	return r.Total == 0
}

// WriteReport writes a formatted report to w.
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "VERIFICATION REPORT: %s\n", r.Name)
	fmt.Fprintln(w, separator)

	if r.OK() {
		fmt.Fprintf(w, "✓ %d elements match the reference bit for bit\n", r.Elements)
		return
	}

	fmt.Fprintf(w, "⚠ %d of %d elements differ from the reference\n\n",
		r.Total, r.Elements)

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Channel", "Row", "Col", "Got", "Want"})
	for _, m := range r.Mismatches {
		t.AppendRow(table.Row{m.Channel, m.Row, m.Col, m.Got.String(), m.Want.String()})
	}
	if r.Total > len(r.Mismatches) {
		t.AppendFooter(table.Row{"", "", "", "...",
			fmt.Sprintf("%d more", r.Total-len(r.Mismatches))})
	}

	fmt.Fprintln(w, t.Render())
}

// SaveReportToFile saves the report to a file.
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
