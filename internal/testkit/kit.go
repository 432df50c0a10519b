// Package testkit generates reproducible datasets for tests and demos.
package testkit

import (
	"math"
	"math/rand"
)

// DatasetConfig configures the dataset generator
type DatasetConfig struct {
	Size         int     `json:"size"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	OutlierRate  float64 `json:"outlier_rate"`  // fraction of values pushed far from the bulk
	OutlierScale float64 `json:"outlier_scale"` // distance of outliers in standard deviations
	Round        bool    `json:"round"`         // round values to integers, producing ties
	Seed         int64   `json:"seed"`
}

// DefaultDatasetConfig returns sensible defaults for dataset generation
func DefaultDatasetConfig() DatasetConfig {
	return DatasetConfig{
		Size:         50,
		Mean:         100,
		StdDev:       15,
		OutlierRate:  0.05,
		OutlierScale: 6,
		Seed:         42,
	}
}

// DatasetGenerator produces normally distributed datasets with injected outliers
type DatasetGenerator struct {
	config DatasetConfig
	rng    *rand.Rand
}

// NewDatasetGenerator creates a new generator; equal seeds give equal output
func NewDatasetGenerator(config DatasetConfig) *DatasetGenerator {
	return &DatasetGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Dataset generates one dataset of the configured size
func (g *DatasetGenerator) Dataset() []float64 {
	return g.DatasetOfSize(g.config.Size)
}

// DatasetOfSize generates one dataset with n values
func (g *DatasetGenerator) DatasetOfSize(n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		v := g.config.Mean + g.rng.NormFloat64()*g.config.StdDev
		if g.rng.Float64() < g.config.OutlierRate {
			offset := g.config.OutlierScale * g.config.StdDev
			if g.rng.Intn(2) == 0 {
				offset = -offset
			}
			v += offset
		}
		if g.config.Round {
			v = math.Round(v)
		}
		data[i] = v
	}
	return data
}

// Datasets generates count datasets with sizes drawn from [minSize, maxSize]
func (g *DatasetGenerator) Datasets(count, minSize, maxSize int) [][]float64 {
	out := make([][]float64, count)
	for i := range out {
		size := minSize
		if maxSize > minSize {
			size += g.rng.Intn(maxSize - minSize + 1)
		}
		out[i] = g.DatasetOfSize(size)
	}
	return out
}

// Shuffled returns a shuffled copy of data
func (g *DatasetGenerator) Shuffled(data []float64) []float64 {
	out := append([]float64(nil), data...)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
