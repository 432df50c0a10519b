package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

func TestParseID(t *testing.T) {
	valid := NewID()

	tests := []struct {
		input    string
		expected ID
		hasError bool
	}{
		{valid.String(), valid, false},
		{"  " + valid.String() + " ", valid, false},
		{"", "", true},
		{"   ", "", true},
		{"../etc/passwd", "", true},
	}

	for _, test := range tests {
		result, err := ParseID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestDatasetHash_OrderIndependent(t *testing.T) {
	a := DatasetHash([]float64{3, 1, 2, 4})
	b := DatasetHash([]float64{4, 2, 1, 3})
	if a != b {
		t.Errorf("permutations hashed differently: %s vs %s", a, b)
	}

	c := DatasetHash([]float64{3, 1, 2, 5})
	if a == c {
		t.Errorf("different datasets share hash %s", a)
	}
}

func TestDatasetHash_DoesNotMutate(t *testing.T) {
	in := []float64{3, 1, 2}
	DatasetHash(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestErrorHelpers(t *testing.T) {
	err := NewInsufficientDataError(3)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if !IsValidationError(err) {
		t.Error("insufficient data should be a validation error")
	}
	if IsInputError(err) {
		t.Error("insufficient data should not be an input error")
	}
	if !IsNotFoundError(ErrAnalysisNotFound) {
		t.Error("ErrAnalysisNotFound should be a not-found error")
	}
	if nf := NewNotFoundError(ErrAnalysisNotFound, "abc"); !errors.Is(nf, ErrAnalysisNotFound) || !IsNotFoundError(nf) {
		t.Errorf("expected wrapped not-found error, got %v", nf)
	}
	if !IsInputError(NewUnsupportedFormatError("data.pdf")) {
		t.Error("unsupported format should be an input error")
	}
}
