package service

import (
	"context"

	"github.com/alexanderramin/askjira/internal/domain"
)

// Searcher runs a filtered query returning at most one page of records.
// A nil fields slice requests the provider's default field set.
type Searcher interface {
	Search(ctx context.Context, jql string, fields []domain.FieldID) ([]domain.Record, error)
}

// FieldCatalog lists the provider's fields.
type FieldCatalog interface {
	Fields(ctx context.Context) ([]domain.Field, error)
}

// Updater sets fields on a single record. Refusals by the provider wrap
// domain.ErrUpdateRejected.
type Updater interface {
	UpdateFields(ctx context.Context, key string, values map[domain.FieldID]any) error
}

// WorklogSource lists the worklog entries of a record.
type WorklogSource interface {
	Worklogs(ctx context.Context, key string) ([]domain.WorkLog, error)
}

// ProjectLister lists the projects visible to the configured user.
type ProjectLister interface {
	Projects(ctx context.Context) ([]domain.Project, error)
}

// Provider is the full set of capabilities the commands need.
type Provider interface {
	Searcher
	FieldCatalog
	Updater
	WorklogSource
	ProjectLister
}

// Journal records mutating runs. Storage failures never reach the caller.
type Journal interface {
	// Begin opens a run and returns its id, or "" when it could not be
	// stored; Record and Finish ignore an empty id.
	Begin(ctx context.Context, command, jql string, dryRun bool) string
	Record(ctx context.Context, runID string, item domain.RunItem)
	Finish(ctx context.Context, runID string, runErr error)
}
