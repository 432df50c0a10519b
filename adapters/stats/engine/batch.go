package engine

import (
	"context"
	"sync"

	"boxplot/domain/boxplot"

	"golang.org/x/sync/semaphore"
)

// BatchResult is the outcome for one dataset of a batch
type BatchResult struct {
	Index   int
	Summary boxplot.Summary
	Err     error
}

// Batch computes summaries for independent datasets concurrently, never
// running more than its weight limit at once.
type Batch struct {
	compute ComputeFunc
	sem     *semaphore.Weighted
}

// NewBatch creates a batch runner with the given concurrency limit
func NewBatch(compute ComputeFunc, concurrency int64) *Batch {
	if compute == nil {
		compute = ComputeSummary
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batch{
		compute: compute,
		sem:     semaphore.NewWeighted(concurrency),
	}
}

// Run computes every dataset and returns results in input order. A failing
// dataset only marks its own result. If ctx ends while waiting for capacity,
// the datasets not yet started carry ctx's error and Run returns it.
func (b *Batch) Run(ctx context.Context, datasets [][]float64) ([]BatchResult, error) {
	results := make([]BatchResult, len(datasets))
	for i := range results {
		results[i].Index = i
	}

	var wg sync.WaitGroup
	var runErr error
	for i, data := range datasets {
		if err := b.sem.Acquire(ctx, 1); err != nil {
			runErr = err
			for j := i; j < len(datasets); j++ {
				results[j].Err = err
			}
			break
		}

		wg.Add(1)
		go func(i int, data []float64) {
			defer wg.Done()
			defer b.sem.Release(1)
			results[i].Summary, results[i].Err = b.compute(data)
		}(i, data)
	}

	wg.Wait()
	return results, runErr
}
