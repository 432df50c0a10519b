// Package dataset turns user input into validated numeric datasets.
//
// Parsing is lenient: tokens that are not numbers are dropped silently, and a
// token that merely starts with a number (for example "12kg") keeps that
// number. Validation is strict and runs before any summary is computed.
package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	separators    = regexp.MustCompile(`[\s,]+`)
	leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// ParseNumber reads the number a token starts with. It reports false for
// tokens without a leading number and for values that are not finite.
func ParseNumber(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	match := leadingNumber.FindString(token)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseText extracts every number from free-form text. Any run of commas,
// spaces, tabs or line breaks separates tokens.
func ParseText(text string) []float64 {
	numbers := make([]float64, 0)
	if strings.TrimSpace(text) == "" {
		return numbers
	}
	for _, token := range separators.Split(text, -1) {
		if v, ok := ParseNumber(token); ok {
			numbers = append(numbers, v)
		}
	}
	return numbers
}

// FormatNumber renders v in its shortest round-trip decimal form
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JoinNumbers renders data the way the tool page echoes a loaded dataset
func JoinNumbers(data []float64) string {
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = FormatNumber(v)
	}
	return strings.Join(parts, ", ")
}
