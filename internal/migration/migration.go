package migration

import (
	"context"

	"boxplot/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
	steps   []step
}

type step struct {
	name string
	sql  string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		steps: []step{
			{name: "create analyses table", sql: createAnalysesTable},
			{name: "create analyses indexes", sql: createAnalysesIndexes},
		},
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Steps returns the migration step names in execution order
func (r *MigrationRunner) Steps() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.name
	}
	return names
}

// Run executes all database migrations in order. Every statement is
// idempotent so Run is safe on every boot.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, s := range r.steps {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return errors.DatabaseError("failed to "+s.name, err)
		}
	}
	return nil
}

const createAnalysesTable = `
	CREATE TABLE IF NOT EXISTS analyses (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL DEFAULT '',
		source VARCHAR(20) NOT NULL,
		data JSONB NOT NULL,
		summary JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)
`

const createAnalysesIndexes = `
	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at DESC)
`
