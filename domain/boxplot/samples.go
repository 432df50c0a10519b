package boxplot

// SampleDataset is a ready-made dataset offered on the tool page
type SampleDataset struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Data        []float64 `json:"data"`
}

var sampleDatasets = []SampleDataset{
	{
		Name:        "Student Test Scores",
		Description: "Math test results from 30 students",
		Data: []float64{
			78, 85, 92, 88, 76, 95, 82, 79, 91, 87,
			83, 89, 77, 94, 81, 86, 90, 84, 88, 93,
			75, 96, 80, 85, 89, 92, 78, 87, 91, 45,
		},
	},
	{
		Name:        "Sales Data",
		Description: "Monthly sales figures across regions",
		Data: []float64{
			4500, 4800, 5200, 4900, 5100, 5400, 4700, 5000, 5300,
			4600, 5500, 4800, 5100, 4900, 5200, 4700, 5000, 5400,
			4800, 5100, 8200,
		},
	},
	{
		Name:        "Simple Numbers",
		Description: "Basic dataset for quick testing",
		Data: []float64{
			5, 7, 8, 10, 12, 14, 15, 18, 20, 22,
			25, 28, 30, 32, 35, 38, 40, 42, 45, 50,
		},
	},
}

// Samples returns copies of all sample datasets
func Samples() []SampleDataset {
	out := make([]SampleDataset, len(sampleDatasets))
	for i := range sampleDatasets {
		out[i] = Sample(i)
	}
	return out
}

// Sample returns a copy of the sample at index. Out of range indexes fall back
// to the first sample.
func Sample(index int) SampleDataset {
	if index < 0 || index >= len(sampleDatasets) {
		index = 0
	}
	s := sampleDatasets[index]
	s.Data = append([]float64(nil), s.Data...)
	return s
}
