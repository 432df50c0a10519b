package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"boxplot/domain/boxplot"
	"boxplot/domain/core"
	"boxplot/ports"

	"github.com/jmoiron/sqlx"
)

// analysisRow mirrors the analyses table
type analysisRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Source    string    `db:"source"`
	Data      string    `db:"data"`
	Summary   string    `db:"summary"`
	CreatedAt time.Time `db:"created_at"`
}

// analysisRepository implements the AnalysisRepository interface
type analysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create inserts a new analysis into the database
func (r *analysisRepository) Create(ctx context.Context, a *boxplot.Analysis) error {
	row, err := toRow(a)
	if err != nil {
		return err
	}

	query := `INSERT INTO analyses (id, name, source, data, summary, created_at)
		VALUES (:id, :name, :source, :data, :summary, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// GetByID retrieves an analysis by its ID
func (r *analysisRepository) GetByID(ctx context.Context, id core.ID) (*boxplot.Analysis, error) {
	query := `SELECT id, name, source, data, summary, created_at FROM analyses WHERE id = $1`

	var row analysisRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError(core.ErrAnalysisNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return fromRow(row)
}

// ListRecent returns the newest analyses first
func (r *analysisRepository) ListRecent(ctx context.Context, limit int) ([]*boxplot.Analysis, error) {
	query := `SELECT id, name, source, data, summary, created_at
	FROM analyses
	ORDER BY created_at DESC, id DESC
	LIMIT $1`

	if limit <= 0 {
		limit = 100
	}

	var rows []analysisRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}

	analyses := make([]*boxplot.Analysis, 0, len(rows))
	for _, row := range rows {
		a, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}

// Delete removes an analysis
func (r *analysisRepository) Delete(ctx context.Context, id core.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if n == 0 {
		return core.NewNotFoundError(core.ErrAnalysisNotFound, id.String())
	}
	return nil
}

func toRow(a *boxplot.Analysis) (analysisRow, error) {
	data, err := json.Marshal(a.Data)
	if err != nil {
		return analysisRow{}, fmt.Errorf("failed to marshal data: %w", err)
	}
	summary, err := json.Marshal(a.Summary)
	if err != nil {
		return analysisRow{}, fmt.Errorf("failed to marshal summary: %w", err)
	}
	return analysisRow{
		ID:        a.ID.String(),
		Name:      a.Name,
		Source:    string(a.Source),
		Data:      string(data),
		Summary:   string(summary),
		CreatedAt: a.CreatedAt.Time(),
	}, nil
}

func fromRow(row analysisRow) (*boxplot.Analysis, error) {
	a := &boxplot.Analysis{
		ID:        core.ID(row.ID),
		Name:      row.Name,
		Source:    boxplot.Source(row.Source),
		CreatedAt: core.NewTimestamp(row.CreatedAt.UTC()),
	}
	if err := json.Unmarshal([]byte(row.Data), &a.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Summary), &a.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	if a.Summary.Outliers == nil {
		a.Summary.Outliers = []float64{}
	}
	return a, nil
}
