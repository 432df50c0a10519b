// Package export serialises an analysis for download.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"boxplot/adapters/chart"
	"boxplot/adapters/excel"
	"boxplot/domain/boxplot"
	"boxplot/internal/dataset"
	"boxplot/internal/errors"
)

// Kind is a downloadable representation of an analysis
type Kind string

const (
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
	KindPNG  Kind = "png"
	KindSVG  Kind = "svg"
)

// Descriptor tells an HTTP layer how to serve an export
type Descriptor struct {
	Kind        Kind
	ContentType string
	FileName    string
}

var descriptors = map[Kind]Descriptor{
	KindCSV:  {KindCSV, "text/csv; charset=utf-8", "box-plot-data.csv"},
	KindXLSX: {KindXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "box-plot-data.xlsx"},
	KindPNG:  {KindPNG, "image/png", "box-plot.png"},
	KindSVG:  {KindSVG, "image/svg+xml", "box-plot.svg"},
}

// Describe returns the descriptor for a kind name such as "csv"
func Describe(kind string) (Descriptor, error) {
	d, ok := descriptors[Kind(strings.ToLower(kind))]
	if !ok {
		return Descriptor{}, errors.InvalidInput(fmt.Sprintf("unsupported export format %q", kind))
	}
	return d, nil
}

// Exporter writes analyses in any supported kind
type Exporter struct {
	chartOptions chart.Options
	now          func() time.Time
}

// NewExporter creates an exporter drawing charts with opts
func NewExporter(opts chart.Options) *Exporter {
	return &Exporter{chartOptions: opts, now: time.Now}
}

// Write serialises a to w in the given kind
func (e *Exporter) Write(w io.Writer, kind Kind, a *boxplot.Analysis) error {
	switch kind {
	case KindCSV:
		return WriteCSV(w, a.Data, a.Summary, e.now())
	case KindXLSX:
		return excel.WriteWorkbook(w, a.Data, a.Summary, e.now())
	case KindPNG, KindSVG:
		opts := e.chartOptions
		opts.Format = chart.Format(kind)
		if a.Name != "" {
			opts.Title = a.Name
		}
		return chart.Render(w, a.Data, a.Summary, opts)
	default:
		return errors.InvalidInput(fmt.Sprintf("unsupported export format %q", kind))
	}
}

// WriteCSV writes the metadata, five-number summary, outliers and raw data
// sections. The raw data keeps its original order.
func WriteCSV(w io.Writer, data []float64, s boxplot.Summary, generatedAt time.Time) error {
	lines := []string{
		"# Box Plot Data Export",
		"# Generated: " + generatedAt.UTC().Format(time.RFC3339),
		fmt.Sprintf("# Data Points: %d", len(data)),
		"",
		"# Five-Number Summary",
		"Statistic,Value",
		"Minimum," + dataset.FormatNumber(s.Minimum),
		"Q1 (25th percentile)," + dataset.FormatNumber(s.FirstQuartile),
		"Median (Q2)," + dataset.FormatNumber(s.Median),
		"Q3 (75th percentile)," + dataset.FormatNumber(s.ThirdQuartile),
		"Maximum," + dataset.FormatNumber(s.Maximum),
		"IQR," + dataset.FormatNumber(s.InterquartileRange),
		fmt.Sprintf("Outliers Count,%d", len(s.Outliers)),
		"",
	}

	if len(s.Outliers) > 0 {
		lines = append(lines, "# Outliers", "Value")
		for _, v := range s.Outliers {
			lines = append(lines, dataset.FormatNumber(v))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "# Raw Data", "Value")
	for _, v := range data {
		lines = append(lines, dataset.FormatNumber(v))
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(lines, "\n")); err != nil {
		return errors.Wrap(err, "failed to write CSV export")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "failed to write CSV export")
	}
	return nil
}
