package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/askjira/internal/domain"
)

var (
	// ErrNotFound indicates no row matched the lookup.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousPrefix indicates a short id matched more than one run.
	ErrAmbiguousPrefix = errors.New("ambiguous id prefix")
)

// RunRepo persists the run journal.
type RunRepo interface {
	Create(ctx context.Context, r *domain.Run) error
	AddItem(ctx context.Context, item *domain.RunItem) error
	Finish(ctx context.Context, id string, status domain.RunStatus, errMsg string, at time.Time) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	GetByPrefix(ctx context.Context, prefix string) (*domain.Run, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Run, error)
	ListItems(ctx context.Context, runID string) ([]*domain.RunItem, error)
}
