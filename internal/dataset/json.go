package dataset

import (
	"math"

	"boxplot/domain/core"
	"boxplot/internal/errors"

	"github.com/tidwall/gjson"
)

// DefaultJSONPath is where ParseJSON looks for values in an object body
const DefaultJSONPath = "data"

// ParseJSON extracts numbers from a JSON document. The values are read from a
// top-level array or from the array at path (a gjson path, "data" when empty).
// Numbers and numeric strings are kept; every other element is dropped.
func ParseJSON(body []byte, path string) ([]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.ParseError("Request body is not valid JSON", core.ErrMalformedInput)
	}

	values := gjson.ParseBytes(body)
	if !values.IsArray() {
		if path == "" {
			path = DefaultJSONPath
		}
		values = values.Get(path)
	}
	if !values.Exists() || !values.IsArray() {
		return nil, errors.NoNumericData("No numeric data found in request")
	}

	return numbersFromArray(values), nil
}

// ParseJSONDatasets extracts an array of datasets (an array of arrays) at path
func ParseJSONDatasets(body []byte, path string) ([][]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.ParseError("Request body is not valid JSON", core.ErrMalformedInput)
	}

	sets := gjson.GetBytes(body, path)
	if !sets.IsArray() {
		return nil, errors.InvalidInput("Expected an array of datasets at " + path)
	}

	var out [][]float64
	sets.ForEach(func(_, set gjson.Result) bool {
		if set.IsArray() {
			out = append(out, numbersFromArray(set))
		} else {
			out = append(out, []float64{})
		}
		return true
	})
	return out, nil
}

func numbersFromArray(arr gjson.Result) []float64 {
	numbers := make([]float64, 0)
	arr.ForEach(func(_, v gjson.Result) bool {
		switch v.Type {
		case gjson.Number:
			if !math.IsNaN(v.Num) && !math.IsInf(v.Num, 0) {
				numbers = append(numbers, v.Num)
			}
		case gjson.String:
			if n, ok := ParseNumber(v.Str); ok {
				numbers = append(numbers, n)
			}
		}
		return true
	})
	return numbers
}
