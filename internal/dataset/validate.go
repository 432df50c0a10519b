package dataset

import (
	"fmt"

	"boxplot/domain/core"
	"boxplot/internal/errors"
)

// Validate rejects datasets a box plot cannot be drawn for: fewer than four
// values, or no variation at all.
func Validate(data []float64) error {
	if len(data) == 0 {
		return errors.InsufficientData("Please enter at least 4 numbers", core.NewInsufficientDataError(0))
	}
	if len(data) < core.MinDataPoints {
		return errors.InsufficientData(
			fmt.Sprintf("At least %d data points required. You have %d.", core.MinDataPoints, len(data)),
			core.NewInsufficientDataError(len(data)),
		)
	}

	first := data[0]
	for _, v := range data[1:] {
		if v != first {
			return nil
		}
	}
	return errors.DegenerateDataset("All values are identical. Box plot requires some variation.")
}
