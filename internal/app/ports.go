package app

import (
	"context"

	"github.com/alexanderramin/askjira/internal/domain"
)

type CatalogUseCase interface {
	Projects(ctx context.Context) ([]domain.Project, error)
	Fields(ctx context.Context) ([]domain.Field, error)
}

type TimetrackingUseCase interface {
	SumTimetracking(ctx context.Context, req TimetrackingRequest) (*TimetrackingResponse, error)
}

type AssignedHoursUseCase interface {
	SumAssignedHours(ctx context.Context, req AssignedHoursRequest) (*AssignedHoursResponse, error)
}

type WorklogUseCase interface {
	SumWorklogs(ctx context.Context, req WorklogRequest) (*WorklogResponse, error)
}

type EpicTreeUseCase interface {
	EpicTree(ctx context.Context, req EpicTreeRequest) (*EpicTreeResponse, error)
}

type AutoAssignUseCase interface {
	AutoAssign(ctx context.Context, req AutoAssignRequest) (*AutoAssignResponse, error)
}

type BackfillUseCase interface {
	SetStoryPoints(ctx context.Context, req BackfillRequest) (*BackfillResponse, error)
}

type HistoryUseCase interface {
	ListRuns(ctx context.Context, limit int) ([]*domain.Run, error)
	ShowRun(ctx context.Context, idPrefix string) (*RunDetail, error)
}

// ProgressFunc reports that done of total records have been processed.
type ProgressFunc func(done, total int, key string)
