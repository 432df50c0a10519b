// Package engine computes five-number summaries for box-and-whisker plots.
//
// Quartiles use the exclusive-median (Tukey hinge) split: when the dataset has
// an odd number of values the middle one belongs to neither half. Values more
// than 1.5 IQR beyond the quartiles are outliers.
package engine

import (
	"sort"

	"boxplot/domain/boxplot"
	"boxplot/domain/core"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// FenceMultiplier scales the IQR to place the outlier fences
const FenceMultiplier = 1.5

// ComputeFunc is the signature shared by ComputeSummary and its wrappers
type ComputeFunc func(data []float64) (boxplot.Summary, error)

// ComputeSummary returns the five-number summary, fences, outliers and whisker
// extremes of data. It fails with core.ErrInsufficientData for fewer than four
// values. data is neither modified nor retained.
func ComputeSummary(data []float64) (boxplot.Summary, error) {
	n := len(data)
	if n < core.MinDataPoints {
		return boxplot.Summary{}, core.NewInsufficientDataError(n)
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	// n >= 4 keeps both halves non-empty, so Quartile cannot fail here.
	q, err := stats.Quartile(sorted)
	if err != nil {
		return boxplot.Summary{}, err
	}

	iqr := q.Q3 - q.Q1
	lower := q.Q1 - FenceMultiplier*iqr
	upper := q.Q3 + FenceMultiplier*iqr

	outliers := make([]float64, 0)
	inFence := make([]float64, 0, n)
	for _, x := range sorted {
		if x < lower || x > upper {
			outliers = append(outliers, x)
		} else {
			inFence = append(inFence, x)
		}
	}

	whiskerMin, whiskerMax := sorted[0], sorted[n-1]
	if len(inFence) > 0 {
		whiskerMin, whiskerMax = floats.Min(inFence), floats.Max(inFence)
	}

	return boxplot.Summary{
		Minimum:            sorted[0],
		FirstQuartile:      q.Q1,
		Median:             q.Q2,
		ThirdQuartile:      q.Q3,
		Maximum:            sorted[n-1],
		InterquartileRange: iqr,
		LowerFence:         lower,
		UpperFence:         upper,
		Outliers:           outliers,
		WhiskerMinimum:     whiskerMin,
		WhiskerMaximum:     whiskerMax,
	}, nil
}

// Median returns the median of values: the middle element for an odd count,
// the mean of the two middle elements for an even count, and 0 when empty.
func Median(values []float64) float64 {
	m, err := stats.Median(values)
	if err != nil {
		return 0
	}
	return m
}
