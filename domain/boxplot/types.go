package boxplot

import (
	"boxplot/domain/core"
)

// Summary is the five-number summary of a dataset together with the fences,
// outliers and whisker extremes needed to draw a box-and-whisker plot.
//
// Minimum <= FirstQuartile <= Median <= ThirdQuartile <= Maximum always holds,
// and WhiskerMinimum/WhiskerMaximum lie inside [Minimum, Maximum].
type Summary struct {
	Minimum            float64   `json:"min"`
	FirstQuartile      float64   `json:"q1"`
	Median             float64   `json:"median"`
	ThirdQuartile      float64   `json:"q3"`
	Maximum            float64   `json:"max"`
	InterquartileRange float64   `json:"iqr"`
	LowerFence         float64   `json:"lowerBound"`
	UpperFence         float64   `json:"upperBound"`
	Outliers           []float64 `json:"outliers"`
	WhiskerMinimum     float64   `json:"whiskerMin"`
	WhiskerMaximum     float64   `json:"whiskerMax"`
}

// IsOutlier reports whether v falls strictly outside the fences.
func (s Summary) IsOutlier(v float64) bool {
	return v < s.LowerFence || v > s.UpperFence
}

// Source records how a dataset entered the system
type Source string

const (
	SourceText   Source = "text"
	SourceCSV    Source = "csv"
	SourceXLSX   Source = "xlsx"
	SourceJSON   Source = "json"
	SourceSample Source = "sample"
)

// Analysis is a dataset together with its computed summary
type Analysis struct {
	ID        core.ID        `json:"id"`
	Name      string         `json:"name"`
	Source    Source         `json:"source"`
	Data      []float64      `json:"data"`
	Summary   Summary        `json:"summary"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// Count returns the number of values in the dataset
func (a *Analysis) Count() int {
	return len(a.Data)
}
