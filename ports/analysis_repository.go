package ports

import (
	"context"

	"boxplot/domain/boxplot"
	"boxplot/domain/core"
)

// AnalysisRepository defines the interface for analysis storage operations
type AnalysisRepository interface {
	Create(ctx context.Context, a *boxplot.Analysis) error
	GetByID(ctx context.Context, id core.ID) (*boxplot.Analysis, error)
	// ListRecent returns at most limit analyses, newest first
	ListRecent(ctx context.Context, limit int) ([]*boxplot.Analysis, error)
	Delete(ctx context.Context, id core.ID) error
}
