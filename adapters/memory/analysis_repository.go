// Package memory holds process-local repository implementations used when no
// database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"boxplot/domain/boxplot"
	"boxplot/domain/core"
	"boxplot/ports"
)

type analysisRepository struct {
	mu       sync.RWMutex
	analyses map[core.ID]*boxplot.Analysis
}

// NewAnalysisRepository creates an empty in-memory analysis repository
func NewAnalysisRepository() ports.AnalysisRepository {
	return &analysisRepository{analyses: make(map[core.ID]*boxplot.Analysis)}
}

func (r *analysisRepository) Create(ctx context.Context, a *boxplot.Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses[a.ID] = clone(a)
	return nil
}

func (r *analysisRepository) GetByID(ctx context.Context, id core.ID) (*boxplot.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.analyses[id]
	if !ok {
		return nil, core.NewNotFoundError(core.ErrAnalysisNotFound, id.String())
	}
	return clone(a), nil
}

func (r *analysisRepository) ListRecent(ctx context.Context, limit int) ([]*boxplot.Analysis, error) {
	r.mu.RLock()
	out := make([]*boxplot.Analysis, 0, len(r.analyses))
	for _, a := range r.analyses {
		out = append(out, clone(a))
	}
	r.mu.RUnlock()

	// UUIDv7 ids break ties between analyses created in the same instant
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *analysisRepository) Delete(ctx context.Context, id core.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.analyses[id]; !ok {
		return core.NewNotFoundError(core.ErrAnalysisNotFound, id.String())
	}
	delete(r.analyses, id)
	return nil
}

func clone(a *boxplot.Analysis) *boxplot.Analysis {
	c := *a
	c.Data = append([]float64(nil), a.Data...)
	c.Summary.Outliers = append([]float64{}, a.Summary.Outliers...)
	return &c
}
