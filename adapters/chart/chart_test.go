package chart

import (
	"bytes"
	"testing"

	"boxplot/domain/boxplot"
	"boxplot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleData = []float64{100, 1, 2, 3, 4, 5, 6, 7, 8, 9}

var sampleSummary = boxplot.Summary{
	Minimum: 1, FirstQuartile: 3, Median: 5.5, ThirdQuartile: 8, Maximum: 100,
	InterquartileRange: 5, LowerFence: -4.5, UpperFence: 15.5,
	Outliers: []float64{100}, WhiskerMinimum: 1, WhiskerMaximum: 9,
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleData, sampleSummary, DefaultOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestRender_SVG(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatSVG
	opts.Title = "Scores"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleData, sampleSummary, opts))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender_FallsBackToDefaultSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleData, sampleSummary, Options{Format: FormatPNG}))
	assert.NotZero(t, buf.Len())
}

func TestRender_RejectsEmptyData(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, nil, boxplot.Summary{}, DefaultOptions())
	require.Error(t, err)
}

func TestOutlierIndexes(t *testing.T) {
	assert.Equal(t, []int{0}, OutlierIndexes(sampleData, sampleSummary))
	assert.Nil(t, OutlierIndexes([]float64{1, 2, 3, 4}, boxplot.Summary{LowerFence: -1.5, UpperFence: 6.5}))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	f, err = ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	_, err = ParseFormat("gif")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
