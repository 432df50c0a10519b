package engine

import (
	"sync"

	"boxplot/domain/boxplot"
	"boxplot/domain/core"
)

// Memo caches summaries keyed on the order-independent dataset hash, so every
// permutation of a dataset shares one entry. The oldest entry is evicted once
// capacity is reached. A capacity of zero disables caching.
type Memo struct {
	compute  ComputeFunc
	capacity int

	mu      sync.RWMutex
	entries map[core.Hash]boxplot.Summary
	order   []core.Hash
	hits    uint64
	misses  uint64
}

// NewMemo wraps compute with a cache holding up to capacity summaries
func NewMemo(compute ComputeFunc, capacity int) *Memo {
	if compute == nil {
		compute = ComputeSummary
	}
	return &Memo{
		compute:  compute,
		capacity: capacity,
		entries:  make(map[core.Hash]boxplot.Summary),
	}
}

// Compute returns the cached summary for data or computes and stores it.
// Failures are not cached.
func (m *Memo) Compute(data []float64) (boxplot.Summary, error) {
	if m.capacity <= 0 {
		return m.compute(data)
	}

	key := core.DatasetHash(data)

	m.mu.RLock()
	cached, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		m.mu.Lock()
		m.hits++
		m.mu.Unlock()
		return cloneSummary(cached), nil
	}

	summary, err := m.compute(data)
	if err != nil {
		return boxplot.Summary{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
	if _, exists := m.entries[key]; !exists {
		if len(m.order) >= m.capacity {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.entries, oldest)
		}
		m.order = append(m.order, key)
	}
	m.entries[key] = cloneSummary(summary)
	return summary, nil
}

// Len returns the number of cached summaries
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stats returns cache hit and miss counts
func (m *Memo) Stats() (hits, misses uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits, m.misses
}

func cloneSummary(s boxplot.Summary) boxplot.Summary {
	s.Outliers = append(make([]float64, 0, len(s.Outliers)), s.Outliers...)
	return s
}
