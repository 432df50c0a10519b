// Package chart draws box-and-whisker plots from a computed summary.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"boxplot/domain/boxplot"
	"boxplot/internal/errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Format is an image format the renderer can produce
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

var (
	boxFill     = color.RGBA{R: 59, G: 130, B: 246, A: 128}
	boxStroke   = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	outlierFill = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	gridColor   = color.RGBA{A: 13}
)

// Options controls the rendered image
type Options struct {
	Width  float64 // points
	Height float64 // points
	Title  string
	YLabel string
	Format Format
}

// DefaultOptions matches the chart shown on the tool page
func DefaultOptions() Options {
	return Options{
		Width:  800,
		Height: 400,
		Title:  "Box Plot",
		YLabel: "Values",
		Format: FormatPNG,
	}
}

// ParseFormat accepts "png" or "svg" in any case
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unsupported chart format %q", s))
	}
}

// Render draws data as a single vertical box plot. The box, median, whiskers
// and outlier marks come from s rather than being re-estimated.
func Render(w io.Writer, data []float64, s boxplot.Summary, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	p, err := build(data, s, opts)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = FormatPNG
	}
	wt, err := p.WriterTo(vg.Points(opts.Width), vg.Points(opts.Height), string(format))
	if err != nil {
		return errors.Wrap(err, "failed to create chart canvas")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write chart")
	}
	return nil
}

func build(data []float64, s boxplot.Summary, opts Options) (*plot.Plot, error) {
	if len(data) == 0 {
		return nil, errors.InvalidInput("cannot draw a box plot without data")
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = opts.YLabel
	p.NominalX("Dataset")

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	box, err := plotter.NewBoxPlot(vg.Points(opts.Width/5), 0, plotter.Values(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build box plot")
	}
	box.FillColor = boxFill
	box.BoxStyle.Color = boxStroke
	box.BoxStyle.Width = vg.Points(2)
	box.MedianStyle.Color = boxStroke
	box.MedianStyle.Width = vg.Points(2)
	box.WhiskerStyle.Color = boxStroke
	box.GlyphStyle.Color = outlierFill
	box.GlyphStyle.Radius = vg.Points(5)
	box.GlyphStyle.Shape = draw.CircleGlyph{}

	box.Min, box.Max = s.Minimum, s.Maximum
	box.Quartile1, box.Median, box.Quartile3 = s.FirstQuartile, s.Median, s.ThirdQuartile
	box.AdjLow, box.AdjHigh = s.WhiskerMinimum, s.WhiskerMaximum
	box.Outside = OutlierIndexes(data, s)

	p.Add(box)
	return p, nil
}

// OutlierIndexes returns the positions in data of values outside the fences
func OutlierIndexes(data []float64, s boxplot.Summary) []int {
	var idx []int
	for i, v := range data {
		if s.IsOutlier(v) {
			idx = append(idx, i)
		}
	}
	return idx
}
